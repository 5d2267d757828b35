package dataset

import (
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"

	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

// sniffEncoding detects the text encoding of sample, returning the
// default encoding when detection is inconclusive.
func sniffEncoding(sample []byte) string {
	if len(sample) == 0 {
		return autoinsight.DefaultEncoding
	}
	result, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil || result == nil || result.Charset == "" {
		return autoinsight.DefaultEncoding
	}
	return normalizeEncodingName(result.Charset)
}

// normalizeEncodingName maps detector charset names onto the labels the
// html encoding index understands.
func normalizeEncodingName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "gb-18030":
		return "gb18030"
	case "":
		return autoinsight.DefaultEncoding
	}
	return name
}

// decodeText converts data from the named encoding to UTF-8. Data that
// is already UTF-8 compatible passes through untouched. Unknown encoding
// names fall back to passthrough rather than failing the load.
func decodeText(data []byte, encodingName string) ([]byte, error) {
	name := normalizeEncodingName(encodingName)
	switch name {
	case "utf-8", "us-ascii", "ascii":
		return data, nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		// Detector produced a label the index does not know.
		return data, nil
	}
	if enc == unicode.UTF8 {
		return data, nil
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, err
	}
	return decoded, nil
}
