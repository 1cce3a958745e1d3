package infirmary

import (
	"fmt"
	"strings"
	"time"

	"github.com/jpmpuerm/infirmary-client/utils"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ValidationPolicy decides what happens to rows without a parameter code or group code
type ValidationPolicy int

const (
	// PassThrough keeps every row and lets missing fields flow into the output as zero values
	PassThrough ValidationPolicy = iota
	// SkipInvalid drops incomplete rows and logs a warning for each
	SkipInvalid
	// FailOnInvalid aborts normalization on the first incomplete row
	FailOnInvalid
)

func (p ValidationPolicy) String() string {
	switch p {
	case PassThrough:
		return "passthrough"
	case SkipInvalid:
		return "skip"
	case FailOnInvalid:
		return "fail"
	}
	return fmt.Sprintf("ValidationPolicy(%d)", int(p))
}

func ParseValidationPolicy(in string) (ValidationPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(in)) {
	case "", "passthrough":
		return PassThrough, nil
	case "skip":
		return SkipInvalid, nil
	case "fail":
		return FailOnInvalid, nil
	}
	return PassThrough, fmt.Errorf("unknown validation policy %q", in)
}

type ResultNormalizer interface {
	Normalize(rows []RawParameterRow) ([]DiagnosticGroup, error)
}

type resultNormalizer struct {
	policy   ValidationPolicy
	location *time.Location
}

// NewResultNormalizer creates a normalizer rendering diagnostic dates in location (time.Local when nil).
func NewResultNormalizer(policy ValidationPolicy, location *time.Location) ResultNormalizer {
	if location == nil {
		location = time.Local
	}
	return &resultNormalizer{
		policy:   policy,
		location: location,
	}
}

// NormalizeLabResultRows groups rows with the PassThrough policy in local time.
func NormalizeLabResultRows(rows []RawParameterRow) []DiagnosticGroup {
	groups, _ := NewResultNormalizer(PassThrough, time.Local).Normalize(rows)
	return groups
}

type parameterKey struct {
	paramCode string
	groupCode string
}

func keyOf(row RawParameterRow) parameterKey {
	return parameterKey{paramCode: row.ParamCode, groupCode: row.GroupCode}
}

func IsConventional(row RawParameterRow) bool {
	return strings.EqualFold(row.ParamMetric, ConventionalMetric)
}

func (n *resultNormalizer) Normalize(rows []RawParameterRow) ([]DiagnosticGroup, error) {
	siRows, conventionalRows, err := n.sanitize(rows)
	if err != nil {
		return nil, err
	}
	return groupParameterRows(mergeParameterRows(siRows, conventionalRows)), nil
}

func (n *resultNormalizer) sanitize(rows []RawParameterRow) (siRows []RawParameterRow, conventionalRows []RawParameterRow, err error) {
	siRows = make([]RawParameterRow, 0, len(rows))
	conventionalRows = make([]RawParameterRow, 0, len(rows)/2)

	for i, row := range rows {
		if row.ParamCode == "" || row.GroupCode == "" {
			switch n.policy {
			case FailOnInvalid:
				return nil, nil, errors.Wrapf(ErrInvalidRow, "row %d: parameter code %q, group code %q", i, row.ParamCode, row.GroupCode)
			case SkipInvalid:
				log.Warn().
					Int("row", i).
					Str("paramCode", row.ParamCode).
					Str("groupCode", row.GroupCode).
					Msg(MsgSkippingInvalidRow)
				continue
			}
		}

		row.ParamValue = RemoveHTMLTags(row.ParamValue)
		row.DiagDate = n.normalizeDate(i, row.DiagDate)

		if IsConventional(row) {
			conventionalRows = append(conventionalRows, row)
		} else {
			siRows = append(siRows, row)
		}
	}

	return siRows, conventionalRows, nil
}

func (n *resultNormalizer) normalizeDate(index int, diagDate *string) *string {
	if diagDate == nil || *diagDate == "" {
		return nil
	}
	normalized, err := NormalizeDiagnosticDate(*diagDate, n.location)
	if err != nil {
		log.Warn().Err(err).Int("row", index).Str("diagDate", *diagDate).Msg(MsgInvalidDiagnosticDate)
		return nil
	}
	return &normalized
}

// mergeParameterRows attaches the first conventional row sharing parameter code and group code to every SI row.
// Conventional rows without an SI counterpart are dropped.
func mergeParameterRows(siRows []RawParameterRow, conventionalRows []RawParameterRow) []mergedParameterRow {
	conventionalByKey := make(map[parameterKey]RawParameterRow, len(conventionalRows))
	for _, row := range conventionalRows {
		key := keyOf(row)
		if _, ok := conventionalByKey[key]; !ok {
			conventionalByKey[key] = row
		}
	}

	merged := make([]mergedParameterRow, len(siRows))
	for i, siRow := range siRows {
		merged[i] = mergedParameterRow{RawParameterRow: siRow}
		if conventionalRow, ok := conventionalByKey[keyOf(siRow)]; ok {
			value := conventionalRow.ParamValue
			metric := conventionalRow.ParamMetric
			merged[i].ConvValue = &value
			merged[i].ConvNormalRange = conventionalRow.ParamNormalRange
			merged[i].ConvMetric = &metric
			merged[i].ConvMetricUnit = conventionalRow.ParamMetricUnit
		}
	}
	return merged
}

func groupParameterRows(rows []mergedParameterRow) []DiagnosticGroup {
	groups := utils.NewOrderedMap[string, DiagnosticGroup]()

	for _, row := range rows {
		if row.ParamValue == "" {
			continue
		}

		group := groups.GetOrCreate(row.GroupCode, func() DiagnosticGroup {
			return DiagnosticGroup{
				TypeCode:    LabTypeCode,
				Code:        row.DiagCode,
				Name:        row.DiagName,
				Date:        row.DiagDate,
				HL7FileName: row.HL7FileName,
				Params:      []DiagnosticParameter{},
			}
		})

		group.Params = append(group.Params, DiagnosticParameter{
			Code:               row.ParamCode,
			Name:               row.ParamName,
			Type:               row.ParamFieldType,
			HasRange:           row.ParamHasRange,
			Sequence:           row.ParamSequence,
			SIValue:            row.ParamValue,
			SIRefNormalRange:   stringPointerToString(row.ParamNormalRange),
			SIMetricUnit:       stringPointerToString(row.ParamMetricUnit),
			ConvValue:          row.ConvValue,
			ConvRefNormalRange: stringPointerToString(row.ConvNormalRange),
			ConvMetricUnit:     stringPointerToString(row.ConvMetricUnit),
			ValueFlag:          stringPointerToString(row.ParamValueFlag),
		})
	}

	return groups.Values()
}
