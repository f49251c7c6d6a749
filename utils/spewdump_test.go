package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSDump(t *testing.T) {
	type node struct {
		Name     string
		Children []int
	}
	out := SDump(&node{Name: "tail", Children: make([]int, 2, 8)})
	assert.Contains(t, out, `Name: (string) (len=4) "tail"`)
	assert.Contains(t, out, "Children: ([]int) (len=2)")
	assert.NotContains(t, out, "cap=")
	assert.NotContains(t, out, "0x")
}
