package report

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// ---------------------------------------------------------------------------
// JUnit XML output (for CI systems that only ingest test reports)
// ---------------------------------------------------------------------------

type junitTestsuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Testsuites []junitTestsuite `xml:"testsuite"`
}
type junitTestsuite struct {
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Time     string          `xml:"time,attr"`
	Cases    []junitTestcase `xml:"testcase"`
}
type junitTestcase struct {
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      string        `xml:"time,attr"`
	Failure   *junitFailure `xml:"failure,omitempty"`
	Skipped   *junitSkipped `xml:"skipped,omitempty"`
}
type junitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}
type junitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// RenderJUnit writes one testcase per violation plus the gate verdict
// itself. Violations below the failure threshold are reported as skipped so
// dashboards still show them without failing the build.
func RenderJUnit(w io.Writer, res *Result) error {
	var cases []junitTestcase
	failures := 0

	for _, g := range res.Groups {
		for i, v := range g.Violations {
			tc := junitTestcase{
				Name:      fmt.Sprintf("%s[%d]", v.RuleID, i),
				Classname: "prodanalyzer." + strings.ToLower(v.Severity.String()),
				Time:      "0",
			}
			if v.Severity.AtLeast(res.Threshold) {
				tc.Failure = &junitFailure{
					Message: v.Message,
					Type:    v.Severity.String(),
					Body:    fmt.Sprintf("%s: %s = %s", v.FilePath, v.ConfigKey, v.ConfigValue),
				}
				failures++
			} else {
				tc.Skipped = &junitSkipped{Message: "below failure threshold"}
			}
			cases = append(cases, tc)
		}
	}

	gate := junitTestcase{
		Name:      "production-readiness-gate",
		Classname: "prodanalyzer.gate",
		Time:      "0",
	}
	if !res.Passed {
		gate.Failure = &junitFailure{
			Message: fmt.Sprintf("violations at or above %s found", res.Threshold),
			Type:    "GATE",
		}
		failures++
	}
	cases = append(cases, gate)

	doc := junitTestsuites{
		Testsuites: []junitTestsuite{{
			Name:     "prod-analyzer",
			Tests:    len(cases),
			Failures: failures,
			Time:     "0",
			Cases:    cases,
		}},
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
