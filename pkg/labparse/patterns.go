package labparse

import (
	"regexp"
	"strings"
)

// LabPattern matches a single lab test result line in OCR text.
// The first capture group is always the numeric value.
type LabPattern struct {
	Name           string
	Regex          *regexp.Regexp
	StandardUnit   string
	AlternateNames []string
	Precision      int
}

// StructuredPattern matches the "TEST NAME ... RESULT ..." report layout
// where the value appears far from the test name.
type StructuredPattern struct {
	Name             string
	Regex            *regexp.Regexp
	StandardUnit     string
	Precision        int
	ReferencePattern *regexp.Regexp
}

// DatePattern locates a report date by its label, lowest priority wins.
type DatePattern struct {
	Key      string
	Regex    *regexp.Regexp
	Priority int
}

var metaEscaper = strings.NewReplacer(
	`.`, `\.`, `*`, `\*`, `+`, `\+`, `?`, `\?`, `^`, `\^`, `$`, `\$`,
	`{`, `\{`, `}`, `\}`, `(`, `\(`, `)`, `\)`, `|`, `\|`,
	`[`, `\[`, `]`, `\]`, `\`, `\\`,
)

func namePattern(name string, alternates []string) string {
	parts := make([]string, 0, len(alternates)+1)
	parts = append(parts, name)
	parts = append(parts, alternates...)
	for i, p := range parts {
		// Names that are already regex fragments (contain "(?:") pass through
		if !strings.Contains(p, "(?:") {
			parts[i] = metaEscaper.Replace(p)
		}
	}
	return strings.Join(parts, "|")
}

func newLabPattern(name string, alternates []string, unitPattern, displayUnit string) LabPattern {
	expr := `(?i)(?:` + namePattern(name, alternates) + `)` +
		`\s*:?\s*` + // optional colon
		`(?:[LEH]\s*)?` + // optional Low/Elevated/High flag
		`(\d+\.?\d*)\s*` + // the value (capture group 1)
		`(?:` +
		`(\d+\.?\d*\s*[-–]\s*\d+\.?\d*)?\s*` + // optional reference range (capture group 2)
		unitPattern +
		`)?`

	unit := displayUnit
	if unit == "" {
		unit = unitPattern
	}

	return LabPattern{
		Name:           name,
		Regex:          regexp.MustCompile(expr),
		StandardUnit:   unit,
		AlternateNames: alternates,
		Precision:      2,
	}
}

// LabPatterns covers the tests extracted from uploaded reports. Several
// alternate spellings below are deliberate OCR misreads seen in real scans.
var LabPatterns = map[string]LabPattern{
	// Blood Count (CBC)
	"WBC": newLabPattern("WBC",
		[]string{"White Blood Cells", "White Blood Count", "Leukocytes"},
		`(?:x10\^9/L|×10[⁹9]?/L|x10\(9\)/L|K/[μµ]L)`,
		"×10⁹/L"),
	"RBC": newLabPattern("RBC",
		[]string{"Red Blood Cells", "Red Blood Count", "Erythrocytes"},
		`(?:x10\^12/L|×10[¹²12]?/L|x10\(12\)/L|M/[μµ]L)`,
		"×10¹²/L"),
	"Hgb": newLabPattern("Hgb",
		[]string{"Hemoglobin", "HGB", "Hb"},
		`g/L`, "g/L"),
	"Hct": newLabPattern("Hct",
		[]string{"Hematocrit", "HCT"},
		``, ""),
	"MCV": newLabPattern("MCV",
		[]string{"Mean Corpuscular Volume"},
		`fL`, "fL"),
	"MCH": newLabPattern("MCH",
		[]string{"Mean Corpuscular Hemoglobin"},
		`pg`, "pg"),
	"MCHC": newLabPattern("MCHC",
		[]string{"Mean Corpuscular Hemoglobin Concentration"},
		`g/L`, "g/L"),
	"RDW": newLabPattern("RDW",
		[]string{"Red Cell Distribution Width"},
		`%`, "%"),
	"PLT": newLabPattern("PLT",
		[]string{"Platelets", "Platelet Count"},
		`(?:x10\^9/L|×10[⁹9]?/L|x10\(9\)/L)`,
		"×10⁹/L"),
	"MPV": newLabPattern("MPV",
		[]string{"Mean Platelet Volume"},
		`fL`, "fL"),

	// Differential
	"Neutrophils": newLabPattern("Neut",
		[]string{"Neutrophils", "Neutrophil Count"},
		`(?:%|x10\^9/L|×10[⁹9]?/L)`, "x10⁹/L"),
	"Lymphocytes": newLabPattern("Lymph",
		[]string{"Lymphocytes", "Lymphocyte Count"},
		`(?:%|x10\^9/L|×10[⁹9]?/L)`, "x10⁹/L"),
	"Monocytes": newLabPattern("Mono",
		[]string{"Monocytes", "Monocyte Count"},
		`(?:%|x10\^9/L|×10[⁹9]?/L)`, "x10⁹/L"),
	"Eosinophils": newLabPattern("Eos",
		[]string{"Eosinophils", "Eosinophil Count"},
		`(?:%|x10\^9/L|×10[⁹9]?/L)`, "x10⁹/L"),
	"Basophils": newLabPattern("Baso",
		[]string{"Basophils", "Basophil Count"},
		`(?:%|x10\^9/L|×10[⁹9]?/L)`, "x10⁹/L"),

	// Chemistry
	"Glucose Random": newLabPattern("Glucose Random",
		[]string{"Glucose", "Blood Glucose", "Random Glucose"},
		`mmol/L`, "mmol/L"),
	"Creatinine": newLabPattern("Creatinine",
		[]string{"Creat", "Serum Creatinine"},
		`(?:umol/L|µmol/L)`, "µmol/L"),
	"eGFR": newLabPattern("eGFR",
		[]string{"Estimated GFR", "Glomerular Filtration Rate"},
		`mL/min/1\.73m[²2]`, "mL/min/1.73m²"),
	"ALT": newLabPattern("ALT",
		[]string{"Alanine Aminotransferase", "SGPT"},
		`U/L`, "U/L"),
	"Albumin": newLabPattern("Albumin",
		[]string{"Alb", "Serum Albumin"},
		`g/L`, "g/L"),

	// Electrolytes
	"Sodium": newLabPattern("Sodium",
		[]string{"Na", "Na+"},
		`mmol/L`, "mmol/L"),
	"Potassium": newLabPattern("Potassium",
		[]string{"K", "K+"},
		`mmol/L`, "mmol/L"),
	"Calcium": newLabPattern("Calcium",
		[]string{"Ca", "Ca2+", "Total Calcium"},
		`mmol/L`, "mmol/L"),
	"Corrected Calcium": newLabPattern("Corrected Total Calcium",
		[]string{"Corrected Ca", "Adjusted Calcium"},
		`mmol/L`, "mmol/L"),
	"Phosphorus": newLabPattern("Phosphorus",
		[]string{"Phosphate", "PO4"},
		`mmol/L`, "mmol/L"),

	// Other tests
	"Uric Acid": newLabPattern("Uric Acid",
		[]string{"Urate"},
		`umol/L`, "µmol/L"),
	"Hemoglobin A1c": newLabPattern("(?:Hgb A1c|Hemoglobin A1C)",
		[]string{"HbA1c", "Glycated Hemoglobin"},
		`%`, "%"),

	// Hormones
	"TSH": newLabPattern("(?:TSH|Thyroid Stimulating Hormone)",
		[]string{"Thyrotropin"},
		`mIU/L`, "mIU/L"),
	"T4 Free": newLabPattern("T4 Free",
		[]string{"Free T4", "FT4"},
		`pmol/L`, "pmol/L"),
	"Testosterone": newLabPattern("Testosterone",
		[]string{"Total Testosterone"},
		`nmol/L`, "nmol/L"),
	"C-Peptide": newLabPattern("C-Peptide",
		[]string{"C Peptide"},
		`pmol/L`, "pmol/L"),
	"FSH": newLabPattern("FSH",
		[]string{"Follicle Stimulating Hormone", "FaH", "F.H"},
		`(?:IU/L|IU/l|IUL|ILE|MAT)`, "IU/L"),
	"LH": newLabPattern("LH",
		[]string{"Luteinizing Hormone"},
		`(?:IU/L|IU/l|IUL|FLL)`, "IU/L"),
	"Prolactin": newLabPattern("Prolactin",
		[]string{"Prolagtin", "Prclactin"},
		`(?:ug/L|ug/l|ugfl)`, "ug/L"),
	"PSA": newLabPattern("PSA Screening",
		[]string{"Prostate Specific Antigen", "PSA", "FSA Sereening", "FSA Screening"},
		`(?:ug/L|ug/l|ugfl|ul|d)`, "ug/L"),
	"Vitamin D": newLabPattern("Vit D 25-hydroxy",
		[]string{"Vitamin D", "25-hydroxy Vitamin D", "25(OH)D", "WitD 25kydroxy", "VitD 25hydroxy U"},
		`(?:nmol/L|nmol/l|nmolL|mrnokL)`, "nmol/L"),
	"Thyroperoxidase Antibody": newLabPattern("Thyroperoxidase Antibody",
		[]string{"THYROPEROXIDASE ANTIBODY", "TPO Antibody", "TPO Ab"},
		`kIU/L`, "kIU/L"),

	// Inflammation
	"C Reactive Protein": newLabPattern("C Reactive Protein",
		[]string{"C REACTIVE PROTEIN", "CRP", "C-Reactive Protein", "REACTIVE PROTEIN"},
		`mg/L`, "mg/L"),
}

// EnhancedPatterns catch testosterone results printed with the value and
// reference range on the same line, where the generic pattern grabs the
// wrong number.
var EnhancedPatterns = map[string]LabPattern{
	"Testosterone": {
		Name:         "Testosterone",
		Regex:        regexp.MustCompile(`(?i)Testosterone\s*(?:\(Final\))?\s*(\d+\.\d+)(?:\s+\d+\.\d+\s*[-–]\s*\d+\.\d+)?\s*nmol/L`),
		StandardUnit: "nmol/L",
		Precision:    2,
	},
	"Bioavailable Testosterone": {
		Name:         "Bioavailable Testosterone",
		Regex:        regexp.MustCompile(`(?i)Bioavailable\s+Testosterone\s*(?:\(Final\))?\s*[^\n]*?([\d.]+)\s*nmol/L`),
		StandardUnit: "nmol/L",
		Precision:    2,
	},
}

var referenceDefault = regexp.MustCompile(`(?i)REFERENCE\s*([\d.-]+)`)

// StructuredTestPatterns handle reports that print TEST NAME / RESULT /
// REFERENCE as separate labelled sections.
var StructuredTestPatterns = map[string]StructuredPattern{
	"Sex Hormone Binding Globulin": {
		Name:             "Sex Hormone Binding Globulin",
		Regex:            regexp.MustCompile(`(?i)SEX\s+HORMONE\s+BINDING\s+GLOBULIN[\s\S]*?RESULT\s*([\d.]+)[\s\S]*?nmol/L`),
		StandardUnit:     "nmol/L",
		Precision:        1,
		ReferencePattern: referenceDefault,
	},
	"Testosterone Bioavailable": {
		Name:             "Testosterone Bioavailable",
		Regex:            regexp.MustCompile(`(?i)TESTOSTERONE\s+BIOAVAILABLE[\s\S]*?RESULT\s*([\d.]+)[\s\S]*?nmol/L`),
		StandardUnit:     "nmol/L",
		Precision:        1,
		ReferencePattern: referenceDefault,
	},
	"T4 Free": {
		Name:             "T4 Free",
		Regex:            regexp.MustCompile(`(?i)T4\s+FREE[\s\S]*?RESULT\s*([\d.]+)[\s\S]*?pmol/L`),
		StandardUnit:     "pmol/L",
		Precision:        1,
		ReferencePattern: referenceDefault,
	},
	"FSH": {
		Name:             "FSH",
		Regex:            regexp.MustCompile(`(?i)FSH[\s\S]*?RESULT\s*([\d.]+)[\s\S]*?[IU]U/L`),
		StandardUnit:     "IU/L",
		Precision:        1,
		ReferencePattern: referenceDefault,
	},
	"TSH": {
		Name:             "TSH",
		Regex:            regexp.MustCompile(`(?i)TSH[\s\S]*?RESULT\s*([\d.]+)[\s\S]*?m[IU]U/L`),
		StandardUnit:     "mIU/L",
		Precision:        1,
		ReferencePattern: referenceDefault,
	},
	"PSA": {
		Name:         "PSA",
		Regex:        regexp.MustCompile(`(?i)FSA\s+Sereening\s+(?:\(?\w+\)?)?\s+(\d+\.\d+)`),
		StandardUnit: "ug/L",
		Precision:    2,
	},
	"VitaminD": {
		Name:         "VitaminD",
		Regex:        regexp.MustCompile(`(?i)[A-Za-z]+D\s+\d+[a-z]+\s+[A-Za-z]\s+(\d+)\s+[a-z]+L`),
		StandardUnit: "nmol/L",
		Precision:    0,
	},
}

// DatePatterns locate the report date. Collection date is the most
// trustworthy label, so it carries the highest priority.
var DatePatterns = []DatePattern{
	{
		Key:      "Collection Date",
		Regex:    regexp.MustCompile(`(?i)Collection Date:?\s*(\d{4}-[A-Za-z]{3}-\d{2}|\d{2}-[A-Za-z]{3}-\d{4})\s*(?:\d{1,2}:\d{2}(?::\d{2})?(?:\s*[AP]M)?)?`),
		Priority: 1,
	},
	{
		Key:      "Collected Date",
		Regex:    regexp.MustCompile(`(?i)Collected Date:?\s*(\d{2}-[A-Za-z]{3}-\d{4}|\d{4}-[A-Za-z]{3}-\d{2})\s*(?:\d{1,2}:\d{2}(?::\d{2})?(?:\s*[AP]M)?)?`),
		Priority: 2,
	},
	{
		Key:      "Generated On",
		Regex:    regexp.MustCompile(`(?i)Generated On:?\s*(\d{4}-[A-Za-z]{3}-\d{2}|\d{2}-[A-Za-z]{3}-\d{4})\s*(?:\d{1,2}:\d{2}(?::\d{2})?(?:\s*[AP]M)?)?`),
		Priority: 3,
	},
	{
		Key:      "Received Date",
		Regex:    regexp.MustCompile(`(?i)Received Date:?\s*(\d{2}-[A-Za-z]{3}-\d{4}|\d{4}-[A-Za-z]{3}-\d{2})\s*(?:\d{1,2}:\d{2}(?::\d{2})?(?:\s*[AP]M)?)?`),
		Priority: 4,
	},
	{
		Key:      "Updated On",
		Regex:    regexp.MustCompile(`(?i)Updated On:?\s*(\d{4}-[A-Za-z]{3}-\d{2}|\d{2}-[A-Za-z]{3}-\d{4})\s*(?:\d{1,2}:\d{2}(?::\d{2})?(?:\s*[AP]M)?)?`),
		Priority: 5,
	},
	{
		Key:      "Last Update Date",
		Regex:    regexp.MustCompile(`(?i)Last Update Date:?\s*(\d{2}-[A-Za-z]{3}-\d{4}|\d{4}-[A-Za-z]{3}-\d{2})\s*(?:\d{1,2}:\d{2}(?::\d{2})?(?:\s*[AP]M)?)?`),
		Priority: 6,
	},
}
