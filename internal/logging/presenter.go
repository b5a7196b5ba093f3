// Copyright (c) 2025 Field Kit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"strings"
)

// PresentError formats err for the terminal under a short context line.
// Credentials embedded in the error text are masked. hint, when set, is the
// troubleshooting title for the failure's category and goes on its own line.
func PresentError(context string, err error, hint string) string {
	if err == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(context)
	sb.WriteString(": ")
	sb.WriteString(Mask(err.Error()))
	if hint = strings.TrimSpace(hint); hint != "" {
		sb.WriteString("\n  ")
		sb.WriteString(hint)
	}
	return sb.String()
}
