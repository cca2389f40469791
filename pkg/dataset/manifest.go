// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package dataset

import (
	"bufio"
	"encoding/json"
	"os"

	"github.com/rapidaai/speechsquad/pkg/commons"
)

// ManifestEntry pairs a question id with the audio file holding its spoken
// form.
type ManifestEntry struct {
	QuestionID    string
	AudioFilepath string
}

// ParseQuestionsJSON reads a JSON-lines manifest where every line carries an
// "audio_filepath" field plus the question id under idKey. Blank lines are
// skipped; a malformed or incomplete line fails the whole parse.
func ParseQuestionsJSON(path, idKey string) ([]ManifestEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, commons.Statusf(commons.StatusNotFound, "could not open file %s: %v", path, err)
	}
	defer file.Close()

	var entries []ManifestEntry
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal([]byte(line), &fields); err != nil {
			return nil, commons.Statusf(commons.StatusInternal, "problem parsing line %q: %v", line, err)
		}
		id, err := stringField(fields, idKey)
		if err != nil {
			return nil, commons.Statusf(commons.StatusInvalidArg, "line %q: %v", line, err)
		}
		filepath, err := stringField(fields, "audio_filepath")
		if err != nil {
			return nil, commons.Statusf(commons.StatusInvalidArg, "line %q: %v", line, err)
		}
		entries = append(entries, ManifestEntry{QuestionID: id, AudioFilepath: filepath})
	}
	if err := scanner.Err(); err != nil {
		return nil, commons.Statusf(commons.StatusInternal, "reading %s: %v", path, err)
	}
	return entries, nil
}

func stringField(fields map[string]json.RawMessage, key string) (string, error) {
	raw, ok := fields[key]
	if !ok {
		return "", commons.Statusf(commons.StatusInvalidArg, "missing %q key", key)
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", commons.Statusf(commons.StatusInvalidArg, "%q is not a string", key)
	}
	return value, nil
}
