// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package commons

import "fmt"

// StatusCode classifies failures across the squad pipeline.
type StatusCode int

const (
	StatusSuccess StatusCode = iota
	StatusUnknown
	StatusInternal
	StatusNotFound
	StatusInvalidArg
	StatusUnavailable
	StatusUnsupported
	StatusAlreadyExists
)

var statusCodeNames = map[StatusCode]string{
	StatusSuccess:       "Success",
	StatusUnknown:       "Unknown",
	StatusInternal:      "Internal",
	StatusNotFound:      "NotFound",
	StatusInvalidArg:    "InvalidArg",
	StatusUnavailable:   "Unavailable",
	StatusUnsupported:   "Unsupported",
	StatusAlreadyExists: "AlreadyExists",
}

func (c StatusCode) String() string {
	if name, ok := statusCodeNames[c]; ok {
		return name
	}
	return "Unknown"
}

// Status is a lightweight result value used where a failure must carry a
// classification but not abort the surrounding batch.
type Status struct {
	Code StatusCode
	Msg  string
}

var StatusOK = Status{Code: StatusSuccess}

func NewStatus(code StatusCode, msg string) Status {
	return Status{Code: code, Msg: msg}
}

func Statusf(code StatusCode, format string, args ...interface{}) Status {
	return Status{Code: code, Msg: fmt.Sprintf(format, args...)}
}

func (s Status) IsOK() bool {
	return s.Code == StatusSuccess
}

// Error implements the error interface; OK statuses render as "Success".
func (s Status) Error() string {
	if s.Msg == "" {
		return s.Code.String()
	}
	return fmt.Sprintf("%s: %s", s.Code, s.Msg)
}
