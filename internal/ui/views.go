package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"gonum.org/v1/gonum/mat"

	"github.com/litescript/oblsph/internal/oblsph"
)

var axisNames = [3]string{"a", "λ", "η"}

func renderCoordinates(os oblsph.OblateSpheroid) string {
	xyz := os.Cartesian()
	rows := [][2]string{
		{"Eccentricity", fmt.Sprintf("%.4f", os.Eccentricity())},
		{"Semimajor a", fmt.Sprintf("%.4f", os.Semimajor())},
		{"Semiminor b", fmt.Sprintf("%.4f", os.Semiminor())},
		{"Longitude λ", fmt.Sprintf("%.2f°", s1.Angle(os.Longitude()).Degrees())},
		{"Latitude η", fmt.Sprintf("%.4f", os.Latitude())},
		{"Cartesian", formatVector(xyz)},
		{"Range", fmt.Sprintf("%.4f", xyz.Norm())},
		{"Volume element", fmt.Sprintf("%.4f", os.VolumeElement())},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Coordinates"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(labelStyle.Render(fmt.Sprintf("  %-16s", r[0])))
		b.WriteString(valueStyle.Render(r[1]))
		b.WriteString("\n")
	}
	return b.String()
}

func renderBasis(os oblsph.OblateSpheroid) string {
	cov := os.CovariantBasis()
	cont := os.ContravariantBasis()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Covariant basis  Z_i = ∂r/∂q^i"))
	b.WriteString("\n")
	for i, v := range cov {
		b.WriteString(labelStyle.Render(fmt.Sprintf("  Z_%s  ", axisNames[i])))
		b.WriteString(valueStyle.Render(formatVector(v)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Contravariant basis  Z^i = ∇q^i"))
	b.WriteString("\n")
	for i, v := range cont {
		b.WriteString(labelStyle.Render(fmt.Sprintf("  Z^%s  ", axisNames[i])))
		b.WriteString(valueStyle.Render(formatVector(v)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("  max |Z^i·Z_j - δ|  "))
	b.WriteString(accentStyle.Render(fmt.Sprintf("%.3g", dualityResidual(cov, cont))))
	b.WriteString("\n")
	return b.String()
}

func renderMetric(os oblsph.OblateSpheroid) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Covariant metric  g_ij"))
	b.WriteString("\n")
	b.WriteString(valueStyle.Render(fmt.Sprintf("%9.4f", mat.Formatted(os.CovariantMetric(), mat.Prefix("  ")))))
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("Contravariant metric  g^ij"))
	b.WriteString("\n")
	b.WriteString(valueStyle.Render(fmt.Sprintf("%9.4f", mat.Formatted(os.ContravariantMetric(), mat.Prefix("  ")))))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("  √det g  "))
	b.WriteString(accentStyle.Render(fmt.Sprintf("%.6f", os.VolumeElement())))
	b.WriteString("\n")
	return b.String()
}

func formatVector(v r3.Vector) string {
	return fmt.Sprintf("(%9.4f, %9.4f, %9.4f)", v.X, v.Y, v.Z)
}

// dualityResidual returns the largest deviation of Z^i · Z_j from δ^i_j.
func dualityResidual(cov, cont oblsph.Basis) float64 {
	var worst float64
	for i := range cont {
		for j := range cov {
			want := 0.0
			if i == j {
				want = 1
			}
			worst = math.Max(worst, math.Abs(cont[i].Dot(cov[j])-want))
		}
	}
	return worst
}
