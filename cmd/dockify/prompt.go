package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// terminalPrompter asks permission questions on the terminal. With yes set
// every question is answered without reading input.
type terminalPrompter struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
	yes bool
}

func newTerminalPrompter(in io.Reader, out io.Writer, yes bool) *terminalPrompter {
	return &terminalPrompter{in: bufio.NewReader(in), out: out, yes: yes}
}

// Confirm implements platform.Prompter.
func (p *terminalPrompter) Confirm(ctx context.Context, question string) (bool, error) {
	if p.yes {
		return true, nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "%s [y/N]: ", question)
	line, err := readLine(ctx, p.in)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// ask prints a prompt and reads one trimmed line.
func (p *terminalPrompter) ask(ctx context.Context, prompt string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "%s: ", prompt)
	return readLine(ctx, p.in)
}

// readLine returns when a line is read or ctx is done. EOF without input
// reads as an empty answer.
func readLine(ctx context.Context, r *bufio.Reader) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := r.ReadString('\n')
		if err == io.EOF {
			err = nil
		}
		ch <- result{strings.TrimSpace(line), err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		return res.line, res.err
	}
}
