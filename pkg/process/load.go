// SPDX-License-Identifier: MPL-2.0

package process

import (
	"encoding/json"
	"fmt"
	"os"
)

// Document is a parsed process description document: the set of processes a
// service endpoint offers plus its language offerings.
type Document struct {
	// Languages are the language codes the service accepts (e.g. "en-US").
	Languages []string `json:"languages,omitempty"`
	// Processes are the described processes, in document order.
	Processes []Description `json:"processes"`
}

// ParseDocument decodes and validates a process description document.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing process description document: %w", err)
	}

	for i := range doc.Processes {
		if err := doc.Processes[i].Validate(); err != nil {
			return nil, err
		}
	}

	return &doc, nil
}

// LoadDocument reads and parses a process description document from disk.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading process description document: %w", err)
	}
	return ParseDocument(data)
}

// Find returns the description with the given process identifier, or nil.
func (d *Document) Find(id string) *Description {
	for i := range d.Processes {
		if d.Processes[i].ID == id {
			return &d.Processes[i]
		}
	}
	return nil
}
