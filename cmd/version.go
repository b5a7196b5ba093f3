// Copyright (c) 2025 Field Kit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

// Version is set at build time using -ldflags.
var Version = "0.0.0-dev"

func userAgent() string { return "fieldkit-cli/" + Version }
