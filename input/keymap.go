package input

import "sort"

// Keymap turns raw key states into a command Set. Toggle commands are only
// reported on the sample where their key goes down.
type Keymap struct {
	bindings map[Command]string
	order    []Command
	held     map[Command]bool
}

func NewKeymap(bindings map[Command]string) *Keymap {
	k := &Keymap{
		bindings: make(map[Command]string, len(bindings)),
		held:     make(map[Command]bool),
	}
	for cmd, key := range bindings {
		k.bindings[cmd] = key
		k.order = append(k.order, cmd)
	}
	sort.Slice(k.order, func(i, j int) bool { return k.order[i] < k.order[j] })
	return k
}

// Keys returns the bound key names, one per command, in command order.
func (k *Keymap) Keys() []string {
	keys := make([]string, len(k.order))
	for i, cmd := range k.order {
		keys[i] = k.bindings[cmd]
	}
	return keys
}

// Sample asks pressed about every bound key.
func (k *Keymap) Sample(pressed func(key string) bool) Set {
	s := make(Set)
	for _, cmd := range k.order {
		down := pressed(k.bindings[cmd])
		if down && !(cmd.Toggle() && k.held[cmd]) {
			s[cmd] = true
		}
		k.held[cmd] = down
	}
	return s
}
