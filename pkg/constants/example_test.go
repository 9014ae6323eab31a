package constants_test

import (
	"fmt"

	"github.com/agentstation/radarmap/pkg/constants"
)

// Example shows the display priorities given to newly discovered stations.
func Example() {
	fmt.Printf("NEXRAD: %.1f\n", constants.PrimaryLOD)
	fmt.Printf("other: %.1f\n", constants.SecondaryLOD)

	// Output:
	// NEXRAD: 0.5
	// other: 0.1
}
