package palette

import (
	"fmt"
	"sort"

	"github.com/okvist/xspawn/internal/config"
)

// BindingItems builds the palette rows for a set of bindings: one selectable
// row per binding, grouped under non-selectable group headers. Bindings
// without a group come first, ungrouped.
func BindingItems(bindings []config.Binding) []Item {
	grouped := make(map[string][]config.Binding)
	for _, b := range bindings {
		grouped[b.Group] = append(grouped[b.Group], b)
	}

	groups := make([]string, 0, len(grouped))
	for g := range grouped {
		groups = append(groups, g)
	}
	sort.Strings(groups) // "" sorts first, so ungrouped bindings lead

	var items []Item
	for _, g := range groups {
		members := grouped[g]
		sort.Slice(members, func(i, j int) bool {
			return members[i].Name < members[j].Name
		})

		if g != "" {
			items = append(items, Item{Label: g, IsHeader: true})
		}
		for _, b := range members {
			label := b.Name
			if b.Keys != "" {
				label = fmt.Sprintf("%s  [%s]", b.Name, b.Keys)
			}
			items = append(items, Item{
				Label:  label,
				Action: b.Name,
				Meta:   b.Command,
			})
		}
	}
	return items
}

// SelectBinding shows the binding palette and returns the chosen binding's
// name. Returns ErrCancelled when the user dismisses the menu.
func SelectBinding(backend Backend, bindings []config.Binding) (string, error) {
	items := BindingItems(bindings)
	if len(items) == 0 {
		return "", fmt.Errorf("palette: no bindings configured")
	}

	message := fmt.Sprintf("%d bindings", len(bindings))
	for {
		item, err := backend.Show("xspawn", items, message)
		if err != nil {
			return "", err
		}
		// Some backends can't enforce non-selectable rows; re-show on headers.
		if item.IsHeader || item.IsDivider {
			continue
		}
		return item.Action, nil
	}
}
