// Copyright (c) 2026 FinSight Labs <oss@finsight.dev>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

// InitLogger installs the finctl handler on the apex root logger. The level
// comes from FINCTL_LOG and defaults to ERROR so normal runs stay quiet.
func InitLogger() {
	level := strings.ToUpper(os.Getenv("FINCTL_LOG"))
	if level == "" {
		level = "ERROR"
	}
	log.SetHandler(&CustomHandler{})
	log.SetLevelFromString(level)
}

// CustomHandler writes one line per entry to stdout: a timestamp, the first
// letter of the level, and the message.
type CustomHandler struct{}

// HandleLog implements log.Handler.
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	level := strings.ToUpper(e.Level.String())
	message := e.Message
	fmt.Fprintf(os.Stdout, "%s %.1s %s\n", timestamp, level, message)
	return nil
}
