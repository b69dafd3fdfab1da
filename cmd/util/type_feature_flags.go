/*
 * Copyright (c) YugabyteDB, Inc.
 */

package util

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// FeatureFlag names a group of commands hidden unless YBA_FF_<flag> is true
type FeatureFlag string

const (
	// TOOLS enables doc generation
	TOOLS FeatureFlag = "TOOLS"
)

func (f FeatureFlag) String() string {
	return string(f)
}

// EnvVarName returns the environment variable that turns the flag on
func (f FeatureFlag) EnvVarName() string {
	return "YBA_FF_" + f.String()
}

// IsFeatureFlagEnabled checks if feature flag is set in the env variable
func IsFeatureFlagEnabled(featureFlag FeatureFlag) bool {
	return strings.ToLower(os.Getenv(featureFlag.EnvVarName())) == "true"
}

// AddCommandIfFeatureFlag adds cmd to parent when the feature flag is enabled
func AddCommandIfFeatureFlag(parent *cobra.Command, cmd *cobra.Command, featureFlag FeatureFlag) {
	if IsFeatureFlagEnabled(featureFlag) {
		parent.AddCommand(cmd)
	}
}
