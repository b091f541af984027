package molprobity

import (
	"strings"

	"github.com/KaramelBytes/mpstats/internal/percentile"
)

// Record is one line of a MolProbity oneline report.
type Record struct {
	FullPDBName        string
	PDB                string
	HydrogenPositions  string
	MolProbityFlips    string
	BackboneTrimState  string
	AssemblyID         string
	EntryID            string
	ValidationListID   string
	MacromoleculeTypes string

	Model            float64
	Clashscore       float64
	ClashscoreLess40 float64
	CbetaOutlier     float64
	NumCbeta         float64
	RotaLess1Pct     float64
	NumRota          float64
	RamaOutlier      float64
	RamaAllowed      float64
	RamaFavored      float64
	NumRama          float64
	NumBadBonds      float64
	NumBonds         float64
	PctBadBonds      float64
	PctResBadBonds   float64
	NumBadAngles     float64
	NumAngles        float64
	PctBadAngles     float64
	PctResBadAngles  float64
	MolProbityScore  float64
	NumPperpOutlier  float64
	NumPperp         float64
	NumSuiteOutlier  float64
	NumSuite         float64

	// Outlier ratios, filled in by Derive.
	CbetaNormalized float64
	RotaNormalized  float64
	RamaNormalized  float64
	PperpNormalized float64
	SuiteNormalized float64
}

// Derive computes the normalized outlier ratios from the raw counts.
func (r *Record) Derive() {
	r.CbetaNormalized = percentile.Normalize(r.CbetaOutlier, r.NumCbeta)
	r.RotaNormalized = percentile.Normalize(r.RotaLess1Pct, r.NumRota)
	r.RamaNormalized = percentile.Normalize(r.RamaOutlier, r.NumRama)
	r.PperpNormalized = percentile.Normalize(r.NumPperpOutlier, r.NumPperp)
	r.SuiteNormalized = percentile.Normalize(r.NumSuiteOutlier, r.NumSuite)
}

// Classification returns the macromolecule types safe for a comma-separated row.
func (r *Record) Classification() string {
	return strings.ReplaceAll(r.MacromoleculeTypes, ",", "-")
}
