// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package dataset loads the SQuAD evaluation data and the audio manifest
// that pairs each question id with a spoken recording.
package dataset

import (
	"encoding/json"
	"os"

	"github.com/rapidaai/speechsquad/pkg/commons"
)

// SquadEvalDataset indexes the SQuAD questions and their reading
// comprehension passages by question id. Questions belonging to the same
// paragraph share one context string.
type SquadEvalDataset struct {
	questions        map[string]string
	questionContexts map[string]*string
}

func NewSquadEvalDataset() *SquadEvalDataset {
	return &SquadEvalDataset{
		questions:        make(map[string]string),
		questionContexts: make(map[string]*string),
	}
}

type squadQA struct {
	Question string `json:"question"`
	ID       string `json:"id"`
}

type squadParagraph struct {
	Context string    `json:"context"`
	QAs     []squadQA `json:"qas"`
}

type squadArticle struct {
	Paragraphs []squadParagraph `json:"paragraphs"`
}

type squadFile struct {
	Data []squadArticle `json:"data"`
}

// LoadFromJSON parses the SQuAD dataset file.
func (d *SquadEvalDataset) LoadFromJSON(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return commons.Statusf(commons.StatusNotFound, "could not open file %s: %v", path, err)
	}
	var file squadFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return commons.Statusf(commons.StatusInternal, "cannot parse squad json file %s: %v", path, err)
	}
	for _, article := range file.Data {
		for _, paragraph := range article.Paragraphs {
			context := paragraph.Context
			for _, qa := range paragraph.QAs {
				d.questions[qa.ID] = qa.Question
				d.questionContexts[qa.ID] = &context
			}
		}
	}
	return nil
}

// Question returns the reference question text for a question id.
func (d *SquadEvalDataset) Question(id string) (string, error) {
	question, ok := d.questions[id]
	if !ok {
		return "", commons.Statusf(commons.StatusNotFound, "question id %s not found", id)
	}
	return question, nil
}

// QuestionContext returns the passage a question is asked against.
func (d *SquadEvalDataset) QuestionContext(id string) (string, error) {
	context, ok := d.questionContexts[id]
	if !ok {
		return "", commons.Statusf(commons.StatusNotFound, "question id %s not found", id)
	}
	return *context, nil
}

// Size reports the number of indexed questions.
func (d *SquadEvalDataset) Size() int {
	return len(d.questions)
}
