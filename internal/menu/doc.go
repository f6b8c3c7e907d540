// Package menu implements the two block menus and the dismiss listeners
// they share.
//
// The type-select menu opens when the command character is released and
// closes on the next click anywhere or when a tag is chosen. The action
// menu opens when a mouse-up leaves a non-collapsed selection and closes on
// any subsequent click, including the click that triggers its action.
//
// Both menus are dismissed through a single document-wide Listeners
// registry. Opening a menu acquires exactly one Handle and every path that
// closes it releases that handle, so the registry is empty whenever no menu
// is open:
//
//	listeners := menu.NewListeners()
//	m := menu.NewSelectMenu(listeners)
//	m.Open(menu.Position{X: 10, Y: 4})
//	listeners.Len() // 1
//	listeners.Dispatch() // outside click closes m
//	listeners.Len() // 0
package menu
