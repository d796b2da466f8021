package sheet_test

import (
	"fmt"

	"github.com/draughtworks/sheetgate/pkg/sheet"
)

func ExampleNormalizeKey() {
	fmt.Println(sheet.NormalizeKey("hero"))
	fmt.Println(sheet.NormalizeKey("north_elevation"))
	fmt.Println(sheet.NormalizeKey("section_aa"))
	fmt.Println(sheet.NormalizeKey("mystery_panel"))
	// Output:
	// hero_3d
	// elevation_north
	// section_long
	// mystery_panel
}

func ExampleFitModeFor() {
	fmt.Println(sheet.FitModeFor(sheet.PanelHero3D))
	fmt.Println(sheet.FitModeFor(sheet.PanelFloorPlanGround))
	// Output:
	// fill
	// scaleToFit
}

func ExampleOccupancy() {
	// A 2:1 image letterboxed into a square slot covers half of it.
	fmt.Printf("%.2f\n", sheet.Occupancy(400, 400, 1000, 500))
	// Output:
	// 0.50
}
