/*
 * Copyright (c) YugabyteDB, Inc.
 */

package util

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// YbaStructuredError is the error body YugabyteDB Anywhere returns on failed
// requests. ybaclient.YBPError cannot be used since Error is either a string
// or a field -> messages map.
type YbaStructuredError struct {
	// User-visible error message
	Error interface{} `json:"error,omitempty"`
	// Method for HTTP call that resulted in this error
	HTTPMethod string `json:"httpMethod,omitempty"`
	// URI for HTTP request that resulted in this error
	RequestURI string `json:"requestUri,omitempty"`
	// Mostly set to false to indicate failure
	Success bool `json:"success"`
}

// ErrorFromBody extracts the error message of a failed response body, or ""
// when the body is not a YugabyteDB Anywhere error
func ErrorFromBody(body []byte) string {
	errorBlock := YbaStructuredError{}
	if err := json.Unmarshal(body, &errorBlock); err != nil {
		return ""
	}
	return ErrorFromResponseBody(errorBlock)
}

// ErrorFromResponseBody is a function to extract error interfaces into string
func ErrorFromResponseBody(errorBlock YbaStructuredError) string {
	if errorBlock.Error == nil {
		return ""
	}
	if s, ok := errorBlock.Error.(string); ok {
		return s
	}
	errorMap, ok := errorBlock.Error.(map[string]interface{})
	if !ok {
		return fmt.Sprintf("%v", errorBlock.Error)
	}
	keys := make([]string, 0, len(errorMap))
	for k := range errorMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v := errorMap[k]
		errorString := "Error:"
		if k != "" {
			errorString = fmt.Sprintf("Field: %s, Error:", k)
		}
		var checkType []interface{}
		if reflect.TypeOf(v) == reflect.TypeOf(checkType) {
			for _, s := range v.([]interface{}) {
				errorString = fmt.Sprintf("%s %v", errorString, s)
			}
		} else {
			errorString = fmt.Sprintf("%s %v", errorString, v)
		}
		parts = append(parts, errorString)
	}
	return strings.Join(parts, "; ")
}

// ConfirmCommand function will add an interactive comfirmation with the message provided
func ConfirmCommand(message string, bypass bool) error {
	errAborted := fmt.Errorf("command aborted")
	if bypass {
		return nil
	}
	response := false
	prompt := &survey.Confirm{
		Message: message,
	}
	err := survey.AskOne(prompt, &response)
	if err != nil {
		return err
	}
	if !response {
		return errAborted
	}
	return nil
}

// SplitList turns a comma separated flag value into a trimmed list,
// dropping empty entries
func SplitList(in string) []string {
	out := make([]string, 0)
	for _, s := range strings.Split(in, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ListFromFlagOrConfig returns the slice flag if it was set, otherwise the
// comma separated or YAML list value stored in viper under key
func ListFromFlagOrConfig(flagValues []string, key string) []string {
	out := make([]string, 0)
	for _, v := range flagValues {
		out = append(out, SplitList(v)...)
	}
	if len(out) > 0 {
		return out
	}
	for _, v := range viper.GetStringSlice(key) {
		out = append(out, SplitList(v)...)
	}
	return out
}

// ValueToYAMLString renders a structured value as YAML, scalars are printed as is
func ValueToYAMLString(value interface{}) (string, error) {
	switch v := value.(type) {
	case nil:
		return "null", nil
	case string:
		return v, nil
	case bool, float64, int, int64:
		return fmt.Sprintf("%v", v), nil
	}
	contentBytes, err := yaml.Marshal(value)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(contentBytes), "\n"), nil
}

// IsOutputType check if the output type is t
func IsOutputType(t string) bool {
	return viper.GetString("output") == t
}
