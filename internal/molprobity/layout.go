package molprobity

// ColumnCount is the number of colon-separated fields in a oneline report line.
const ColumnCount = 33

type textColumn struct {
	pos   int
	name  string
	field func(*Record) *string
}

type numColumn struct {
	pos   int
	name  string
	field func(*Record) *float64
}

var textColumns = []textColumn{
	{0, "fullpdbname", func(r *Record) *string { return &r.FullPDBName }},
	{1, "pdb", func(r *Record) *string { return &r.PDB }},
	{3, "hydrogen_positions", func(r *Record) *string { return &r.HydrogenPositions }},
	{4, "molprobity_flips", func(r *Record) *string { return &r.MolProbityFlips }},
	{5, "backbone_trim_state", func(r *Record) *string { return &r.BackboneTrimState }},
	{6, "assembly_id", func(r *Record) *string { return &r.AssemblyID }},
	{30, "entry_id", func(r *Record) *string { return &r.EntryID }},
	{31, "structure_val_oneline_list_id", func(r *Record) *string { return &r.ValidationListID }},
	{32, "macromolecule_types", func(r *Record) *string { return &r.MacromoleculeTypes }},
}

var numericColumns = []numColumn{
	{2, "model", func(r *Record) *float64 { return &r.Model }},
	{7, "clashscore", func(r *Record) *float64 { return &r.Clashscore }},
	{8, "clashscore_less40", func(r *Record) *float64 { return &r.ClashscoreLess40 }},
	{9, "cbeta_outlier", func(r *Record) *float64 { return &r.CbetaOutlier }},
	{10, "numcbeta", func(r *Record) *float64 { return &r.NumCbeta }},
	{11, "rota_less1pct", func(r *Record) *float64 { return &r.RotaLess1Pct }},
	{12, "numrota", func(r *Record) *float64 { return &r.NumRota }},
	{13, "ramaoutlier", func(r *Record) *float64 { return &r.RamaOutlier }},
	{14, "ramaallowed", func(r *Record) *float64 { return &r.RamaAllowed }},
	{15, "ramafavored", func(r *Record) *float64 { return &r.RamaFavored }},
	{16, "numrama", func(r *Record) *float64 { return &r.NumRama }},
	{17, "numbadbonds", func(r *Record) *float64 { return &r.NumBadBonds }},
	{18, "numbonds", func(r *Record) *float64 { return &r.NumBonds }},
	{19, "pct_badbonds", func(r *Record) *float64 { return &r.PctBadBonds }},
	{20, "pct_resbadbonds", func(r *Record) *float64 { return &r.PctResBadBonds }},
	{21, "numbadangles", func(r *Record) *float64 { return &r.NumBadAngles }},
	{22, "numangles", func(r *Record) *float64 { return &r.NumAngles }},
	{23, "pct_badangles", func(r *Record) *float64 { return &r.PctBadAngles }},
	{24, "pct_resbadangles", func(r *Record) *float64 { return &r.PctResBadAngles }},
	{25, "molprobityscore", func(r *Record) *float64 { return &r.MolProbityScore }},
	{26, "numpperp_outlier", func(r *Record) *float64 { return &r.NumPperpOutlier }},
	{27, "numpperp", func(r *Record) *float64 { return &r.NumPperp }},
	{28, "numsuite_outlier", func(r *Record) *float64 { return &r.NumSuiteOutlier }},
	{29, "numsuite", func(r *Record) *float64 { return &r.NumSuite }},
}
