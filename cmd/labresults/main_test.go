package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	infirmary "github.com/jpmpuerm/infirmary-client"
	"github.com/jpmpuerm/infirmary-client/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const labRowsJSON = `[
  {"code": "N-1", "diagCode": "CBC", "diagName": "Complete Blood Count", "diagDate": "2024-02-27T09:15:30Z",
   "diagParamCode": "HGB", "diagParamName": "Hemoglobin", "diagParamValue": "<b>140</b>", "diagParamMetric": "SI",
   "diagParamMetricUnit": "g/L", "diagParamSequence": 1},
  {"code": "N-1", "diagParamCode": "HGB", "diagParamValue": "14.0", "diagParamMetric": "Conventional",
   "diagParamMetricUnit": "g/dL"}
]`

func testConfiguration(baseURL string) *config.Configuration {
	return &config.Configuration{
		APIBaseURL:        baseURL,
		APITimeoutSeconds: 5,
		CallLogSize:       10,
		DateLocation:      time.UTC,
	}
}

func execute(t *testing.T, configuration *config.Configuration, stdin string, args ...string) (string, error) {
	cmd := newRootCmd(configuration)
	stdout := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestNormalizeFromStdin(t *testing.T) {
	out, err := execute(t, testConfiguration(""), labRowsJSON, "normalize")
	require.Nil(t, err)

	var groups []infirmary.DiagnosticGroup
	require.Nil(t, json.Unmarshal([]byte(out), &groups))
	require.Equal(t, 1, len(groups))
	assert.Equal(t, "2024-02-27 09:15:30", *groups[0].Date)
	require.Equal(t, 1, len(groups[0].Params))
	assert.Equal(t, "140", groups[0].Params[0].SIValue)
	assert.Equal(t, "14.0", *groups[0].Params[0].ConvValue)
	assert.Equal(t, "g/dL", groups[0].Params[0].ConvMetricUnit)
}

func TestNormalizeFromFileWithFailPolicy(t *testing.T) {
	file := filepath.Join(t.TempDir(), "rows.json")
	require.Nil(t, os.WriteFile(file, []byte(`[{"code": "N-1", "diagParamValue": "1"}]`), 0o600))

	_, err := execute(t, testConfiguration(""), "", "normalize", "--file", file, "--policy", "fail")
	assert.ErrorIs(t, err, infirmary.ErrInvalidRow)

	_, err = execute(t, testConfiguration(""), "", "normalize", "--file", file, "--policy", "strict")
	assert.NotNil(t, err)
}

func TestFetch(t *testing.T) {
	var authorization, patientNo string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorization = r.Header.Get("Authorization")
		patientNo = r.URL.Query().Get("patientNo")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(labRowsJSON))
	}))
	defer server.Close()

	out, err := execute(t, testConfiguration(server.URL+"/api/"), "", "fetch", "/diagnostics/lab", "--token", "abc", "--query", "patientNo=7000123")
	require.Nil(t, err)

	var groups []infirmary.DiagnosticGroup
	require.Nil(t, json.Unmarshal([]byte(out), &groups))
	assert.Equal(t, 1, len(groups))
	assert.Equal(t, "Bearer abc", authorization)
	assert.Equal(t, "7000123", patientNo)
}

func TestFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	out, err := execute(t, testConfiguration(server.URL), "", "fetch", "/diagnostics/lab")
	assert.ErrorIs(t, err, errRequestFailed)

	var output failureOutput
	require.Nil(t, json.Unmarshal([]byte(out), &output))
	assert.True(t, output.Error)
	assert.Equal(t, 401, output.Status)
	assert.Equal(t, "Unauthorized", output.Body)
	assert.Equal(t, "You are not allowed to access this data.", output.Description)
}

func TestStatus(t *testing.T) {
	byCode, err := execute(t, testConfiguration(""), "", "status", "403")
	require.Nil(t, err)
	byKey, err := execute(t, testConfiguration(""), "", "status", "forbidden")
	require.Nil(t, err)

	assert.Equal(t, byCode, byKey)
	assert.Contains(t, byCode, `"code": 403`)

	_, err = execute(t, testConfiguration(""), "", "status", "999")
	assert.NotNil(t, err)
}

func TestResolveURL(t *testing.T) {
	assert.Equal(t, "http://emr/api/lab", resolveURL("http://emr/api/", "/lab"))
	assert.Equal(t, "http://emr/api/lab", resolveURL("http://emr/api", "lab"))
	assert.Equal(t, "https://other/lab", resolveURL("http://emr/api", "https://other/lab"))
}
