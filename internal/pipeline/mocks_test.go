package pipeline

import (
	"context"

	dataframe "github.com/rocketlaunchr/dataframe-go"

	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

type mockLoader struct {
	df    *dataframe.DataFrame
	meta  *autoinsight.LoadMetadata
	err   error
	calls int
}

func (m *mockLoader) CheckFileSize(_ string) (bool, float64, error) {
	return true, 0, nil
}

func (m *mockLoader) DetectEncoding(_ string) (string, error) {
	return autoinsight.DefaultEncoding, nil
}

func (m *mockLoader) Load(_ context.Context, _ string, _ autoinsight.LoadOptions) (*dataframe.DataFrame, *autoinsight.LoadMetadata, error) {
	m.calls++
	if m.err != nil {
		return nil, nil, m.err
	}
	return m.df, m.meta, nil
}

func (m *mockLoader) Sample(df *dataframe.DataFrame, _ int) *dataframe.DataFrame {
	return df
}

type mockCleaner struct {
	report *autoinsight.CleaningReport
	err    error
	calls  int
}

func (m *mockCleaner) Clean(_ context.Context, df *dataframe.DataFrame, _ autoinsight.CleaningConfig) (*dataframe.DataFrame, *autoinsight.CleaningReport, error) {
	m.calls++
	if m.err != nil {
		return nil, nil, m.err
	}
	return df, m.report, nil
}

type mockAnalyzer struct {
	result *autoinsight.AnalysisResult
	err    error
	calls  int
}

func (m *mockAnalyzer) Analyze(_ context.Context, _ *dataframe.DataFrame, _ autoinsight.AnalysisConfig) (*autoinsight.AnalysisResult, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

type mockRenderer struct {
	set     *autoinsight.ChartSet
	err     error
	calls   int
	lastDir string
}

func (m *mockRenderer) Render(_ context.Context, _ *dataframe.DataFrame, _ *autoinsight.AnalysisResult, outputDir string) (*autoinsight.ChartSet, error) {
	m.calls++
	m.lastDir = outputDir
	if m.err != nil {
		return nil, m.err
	}
	return m.set, nil
}

type mockReporter struct {
	path      string
	err       error
	calls     int
	lastInput autoinsight.ReportInput
	lastDir   string
}

func (m *mockReporter) Build(_ context.Context, input autoinsight.ReportInput, outputDir string) (string, error) {
	m.calls++
	m.lastInput = input
	m.lastDir = outputDir
	if m.err != nil {
		return "", m.err
	}
	return m.path, nil
}

type mockApprover struct {
	approved bool
	err      error
	calls    int
}

func (m *mockApprover) RequestApproval(_ context.Context, _ string) (bool, error) {
	m.calls++
	return m.approved, m.err
}
