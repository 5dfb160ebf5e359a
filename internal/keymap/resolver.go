package keymap

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Resolver maps key strings to actions.
type Resolver struct {
	bindings  map[string]Action            // key -> action, last binding wins
	byContext map[string]map[string]Action // context -> key -> action
	byAction  map[Action][]string          // action -> keys (for help/documentation)
	help      map[string]map[Action]Binding
}

// NewResolver creates a resolver from bindings.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings:  make(map[string]Action),
		byContext: make(map[string]map[string]Action),
		byAction:  make(map[Action][]string),
		help:      make(map[string]map[Action]Binding),
	}
	for _, b := range bindings {
		ctx := r.byContext[b.Context]
		if ctx == nil {
			ctx = make(map[string]Action)
			r.byContext[b.Context] = ctx
		}
		for _, key := range b.Keys {
			r.bindings[key] = b.Action
			ctx[key] = b.Action
		}
		if r.help[b.Context] == nil {
			r.help[b.Context] = make(map[Action]Binding)
		}
		r.help[b.Context][b.Action] = b
		// Collect all keys for each action (may have duplicates from different contexts)
		r.byAction[b.Action] = append(r.byAction[b.Action], b.Keys...)
	}
	// Deduplicate keys per action
	for action, keys := range r.byAction {
		r.byAction[action] = dedupe(keys)
	}
	return r
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(key string) Action {
	return r.bindings[key]
}

// ResolveIn looks the key up in each context in order and returns the first
// match. The same key may mean different things in different screens.
func (r *Resolver) ResolveIn(key string, contexts ...string) Action {
	for _, c := range contexts {
		if a, ok := r.byContext[c][key]; ok {
			return a
		}
	}
	return ""
}

// KeysFor returns the keys bound to an action (for help/documentation).
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

// Help returns the binding of action in context as a bubbles key binding,
// for rendering with the help component. Unknown pairs are disabled.
func (r *Resolver) Help(action Action, context string) key.Binding {
	b, ok := r.help[context][action]
	if !ok {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(
		key.WithKeys(b.Keys...),
		key.WithHelp(helpKey(b.Keys[0]), strings.ToLower(b.Description)),
	)
}

func helpKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

// dedupe removes duplicate strings from a slice.
func dedupe(s []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(s))
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}
