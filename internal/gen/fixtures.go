package gen

// Demo inputs. The expected outputs are the natural orderings of these
// values, so tests derive them with the slices package.
var (
	ScenarioInts = []int64{170, -45, 75, -9000, 802, -24, 2, 66, 0, -1}

	ScenarioFloat32s = []float32{3.14, -1.25, 0.5, -99.9, 2.0, 0.0, -0.001, 100.0}

	ScenarioFloat64s = []float64{
		3.1415926535, -1.25, 0.5, -99.9999, 2.0, 0.0, -0.000001, 100.0,
		1.7976931348623157e+308, -1.7976931348623157e+308,
	}

	ScenarioStrings = []string{"banana", "apple", "zebra", "fig", "grapefruit", "cherry"}
)
