package infirmary

const (
	// LabTypeCode is the type tag carried by every group produced from lab result rows.
	LabTypeCode = "LAB"

	// ConventionalMetric marks a row reported in conventional units. Any other metric is SI.
	ConventionalMetric = "CONVENTIONAL"
)

// RawParameterRow - one diagnostic parameter as delivered by the backend.
// Each parameter normally arrives twice, once in SI and once in conventional units.
type RawParameterRow struct {
	// GroupCode joins the rows that belong to the same diagnostic report
	GroupCode        string  `json:"code"`
	DiagCode         string  `json:"diagCode"`
	DiagName         string  `json:"diagName"`
	DiagDate         *string `json:"diagDate"`
	HL7FileName      string  `json:"hl7FileName"`
	ParamCode        string  `json:"diagParamCode"`
	ParamName        string  `json:"diagParamName"`
	ParamFieldType   string  `json:"diagParamFieldTypeCode"`
	ParamHasRange    bool    `json:"diagParamHasRange"`
	ParamSequence    int     `json:"diagParamSequence"`
	ParamValue       string  `json:"diagParamValue"`
	ParamNormalRange *string `json:"diagParamRefNormalRange"`
	ParamMetricUnit  *string `json:"diagParamMetricUnit"`
	ParamMetric      string  `json:"diagParamMetric"`
	ParamValueFlag   *string `json:"diagParamValueFlag"`
}

// mergedParameterRow is an SI row that may carry the values of its conventional counterpart
type mergedParameterRow struct {
	RawParameterRow
	ConvValue       *string
	ConvNormalRange *string
	ConvMetric      *string
	ConvMetricUnit  *string
}

// DiagnosticGroup - one lab report with its parameters, ready to be rendered
type DiagnosticGroup struct {
	TypeCode    string                `json:"typeCode"`
	Code        string                `json:"code"`
	Name        string                `json:"name"`
	Date        *string               `json:"date"`
	HL7FileName string                `json:"hl7FileName"`
	Params      []DiagnosticParameter `json:"params"`
}

type DiagnosticParameter struct {
	Code               string  `json:"code"`
	Name               string  `json:"name"`
	Type               string  `json:"type"`
	HasRange           bool    `json:"hasRange"`
	Sequence           int     `json:"sequence"`
	SIValue            string  `json:"siValue"`
	SIRefNormalRange   string  `json:"siRefNormalRange"`
	SIMetricUnit       string  `json:"siMetricUnit"`
	ConvValue          *string `json:"convValue,omitempty"`
	ConvRefNormalRange string  `json:"convRefNormalRange"`
	ConvMetricUnit     string  `json:"convMetricUnit"`
	ValueFlag          string  `json:"valueFlag"`
}

func stringPointerToString(value *string) string {
	if value != nil {
		return *value
	}
	return ""
}
