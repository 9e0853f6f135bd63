//
// Copyright (c) 2020, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package plot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/RobWatersMet/VernierParser/internal/pkg/timings"
	"github.com/RobWatersMet/VernierParser/internal/pkg/vernier"
)

const (
	barWidth     = 10
	minWidthInch = 6
	heightInch   = 4
)

type series struct {
	label string
	color color.Color
	value func(timings.Stats) float64
}

var statsSeries = []series{
	{"min", color.RGBA{100, 200, 100, 255}, func(s timings.Stats) float64 { return s.Min }},
	{"mean", color.RGBA{100, 100, 255, 255}, func(s timings.Stats) float64 { return s.Mean }},
	{"max", color.RGBA{255, 100, 100, 255}, func(s timings.Stats) float64 { return s.Max }},
}

func getValues(regions []string, summary map[string]timings.Stats, value func(timings.Stats) float64) plotter.Values {
	values := make(plotter.Values, len(regions))
	for i, region := range regions {
		values[i] = value(summary[region])
	}
	return values
}

func create(field vernier.Field, summary map[string]timings.Stats) (*plot.Plot, []string, error) {
	regions := timings.SortedRegions(summary)
	if len(regions) == 0 {
		return nil, nil, fmt.Errorf("no region to plot")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s across ranks", field)
	p.Y.Label.Text = string(field)
	p.Legend.Top = true

	w := vg.Points(barWidth)
	for i, s := range statsSeries {
		bars, err := plotter.NewBarChart(getValues(regions, summary, s.value), w)
		if err != nil {
			return nil, nil, err
		}
		bars.Color = s.color
		bars.LineStyle.Width = vg.Length(0)
		bars.Offset = vg.Length(i-1) * w
		p.Add(bars)
		p.Legend.Add(s.label, bars)
	}
	p.NominalX(regions...)
	p.X.Tick.Label.Rotation = 0.5

	return p, regions, nil
}

// Summary plots the min, mean and max of every region of a summary.
// The format of the image (png, svg, pdf...) depends on the extension of the path.
func Summary(path string, field vernier.Field, summary map[string]timings.Stats) error {
	p, regions, err := create(field, summary)
	if err != nil {
		return err
	}

	width := vg.Length(len(regions)) * vg.Inch
	if width < minWidthInch*vg.Inch {
		width = minWidthInch * vg.Inch
	}
	return p.Save(width, heightInch*vg.Inch, path)
}
