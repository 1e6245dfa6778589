package finboard

import "fmt"

// Goal is a savings target funded from the cash balance. Deleting a goal
// returns its current amount to cash.
type Goal struct {
	Name     string
	Target   Money // must be positive
	Current  Money // zero or positive
	Category string
}

// Progress returns the funded ratio, in [0,1] once the goal is reached.
func (g Goal) Progress() float64 {
	if !g.Target.IsPositive() {
		return 0
	}
	return g.Current.value.Div(g.Target.value).InexactFloat64()
}

// Reached reports whether the goal is fully funded.
func (g Goal) Reached() bool {
	return g.Current.GreaterThanOrEqual(g.Target)
}

func (g Goal) String() string {
	return fmt.Sprintf("%s %s of %s", g.Name, g.Current, g.Target)
}
