package mixing

import "scflab/internal/scf"

// Kerker screens the long-wavelength components of the residual, multiplying
// mode i by g_i^2 / (g_i^2 + q0^2). For metals, whose dielectric response
// diverges like 1/g^2 at small g, this cancels the divergence and restores a
// uniform effective step; for short wavelengths it is transparent. q0 plays
// the role of the Thomas-Fermi screening wavevector.
type Kerker struct {
	q0 float64
	g  []float64
}

// NewKerker builds a Kerker mixer over the given per-component mode
// wavevectors. Components beyond len(g) pass through unscaled.
func NewKerker(g []float64, q0 float64) *Kerker {
	return &Kerker{q0: q0, g: g}
}

func (k *Kerker) Mix(r scf.Density) scf.Density {
	out := make(scf.Density, len(r))
	for i, v := range r {
		if i >= len(k.g) {
			out[i] = v
			continue
		}
		g2 := k.g[i] * k.g[i]
		out[i] = v * g2 / (g2 + k.q0*k.q0)
	}
	return out
}
