// Package cli handles cmd line input and suggestions for DBG and testing
// various features
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/queryserve/internal/utils"
	"github.com/bastiangx/queryserve/pkg/autocomplete"
)

// InputHandler processes query lines from stdin and prints the merged
// suggestions for a cursor placed at the end of the line.
type InputHandler struct {
	aggregator   *autocomplete.Aggregator
	suggestLimit int
	maxQueryLen  int
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(aggregator *autocomplete.Aggregator, limit, maxQueryLen int) *InputHandler {
	return &InputHandler{
		aggregator:   aggregator,
		suggestLimit: limit,
		maxQueryLen:  maxQueryLen,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a query line from stdin, and
// completes it with the cursor at the end of the line. Loop terminates if an
// error occurs while reading from stdin.
func (h *InputHandler) Start() error {
	log.Print("queryserve CLI")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type a query and press Enter to see the suggestions (Ctrl+C to exit):")

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}
		h.handleInput(line)
	}
}

// handleInput completes a single query line and prints the results.
func (h *InputHandler) handleInput(input string) {
	if len(input) > h.maxQueryLen {
		log.Errorf("Query too long: %d bytes", len(input))
		return
	}

	start := time.Now()
	req := autocomplete.NewRequest(input, len(input), h.suggestLimit)
	results := h.aggregator.CompleteRequest(context.Background(), req)
	elapsed := time.Since(start)

	log.Debugf("Took [ %v ] for query '%s'", elapsed, input)

	if len(results) == 0 {
		log.Warnf("No suggestions for: '%s'", input)
		return
	}

	log.Printf("Found %d suggestions for '%s':", len(results), input)
	for i, r := range results {
		fmtScore := utils.FormatWithCommas(r.Score)
		clCaption := fmt.Sprintf("\033[38;5;75m%s\033[0m", r.Caption)
		log.Printf("%2d. %-40s (score: %8s)  %s", i+1, clCaption, fmtScore, r.Meta)
	}
}
