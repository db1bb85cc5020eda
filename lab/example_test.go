package lab_test

import (
	"fmt"
	"time"

	"github.com/KomalYerkal/Preparation-of-Soap/lab"
	"github.com/KomalYerkal/Preparation-of-Soap/timing"
)

// Example_virtualLab pours the three ingredients and lets virtual time run
// past the reaction delay.
func Example_virtualLab() {
	engine := timing.NewSerialEngine()
	l := lab.New(engine, lab.Config{ReactionDelay: 3 * time.Second})

	for _, name := range []string{"oil", "water", "lye"} {
		view, err := l.AddIngredientByName(name)
		if err != nil {
			fmt.Println("unexpected error:", err)
			return
		}
		fmt.Printf("%-5s -> %d%% %s\n", name, view.FillHeightPercent, view.Status)
	}

	if err := engine.Run(); err != nil {
		fmt.Println("unexpected error:", err)
		return
	}

	fmt.Printf("after %s -> %s\n", engine.CurrentTime(), l.View().Status)
	// Output:
	// oil   -> 30% Filling...
	// water -> 60% Oil & Water (Separated)
	// lye   -> 90% Saponification!
	// after 3s -> Success!
}
