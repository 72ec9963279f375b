package main

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/theflywheel/chash"
	"github.com/theflywheel/chash/metrics"
)

const absent = "(absent)"

// Shell executes line-oriented table commands and writes one line of output
// per command
type Shell struct {
	name  string
	table *chash.Table
	out   io.Writer
}

func NewShell(name string, table *chash.Table, out io.Writer) *Shell {
	return &Shell{name: name, table: table, out: out}
}

// Run executes every command read from in, stopping at the first bad line
func (s *Shell) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := s.exec(line); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read commands: %w", err)
	}
	return nil
}

func (s *Shell) exec(line string) error {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "put":
		if len(args) < 2 {
			return fmt.Errorf("usage: put <key> <value>")
		}
		key, err := parseKey(args[0])
		if err != nil {
			return err
		}
		s.table.Put(key, strings.Join(args[1:], " "))
		metrics.SetSize(s.name, s.table.Size())
		fmt.Fprintln(s.out, "ok")

	case "get", "has", "del":
		if len(args) != 1 {
			return fmt.Errorf("usage: %s <key>", cmd)
		}
		key, err := parseKey(args[0])
		if err != nil {
			return err
		}
		switch cmd {
		case "get":
			s.printValue(s.table.Search(key))
		case "has":
			fmt.Fprintln(s.out, s.table.ContainsKey(key))
		case "del":
			s.printValue(s.table.Remove(key))
			metrics.SetSize(s.name, s.table.Size())
		}

	case "keys":
		keys := make([]int, 0, s.table.Size())
		for k := range s.table.Keys() {
			keys = append(keys, k)
		}
		sort.Ints(keys)
		strs := make([]string, len(keys))
		for i, k := range keys {
			strs[i] = strconv.Itoa(k)
		}
		fmt.Fprintln(s.out, strings.Join(strs, " "))

	case "values":
		values := s.table.Values()
		sort.Strings(values)
		fmt.Fprintln(s.out, strings.Join(values, ","))

	case "stats":
		fmt.Fprintf(s.out, "size=%d capacity=%d load_factor=%g resizes=%d\n",
			s.table.Size(), s.table.Capacity(), s.table.LoadFactor(), s.table.Resizes())

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func (s *Shell) printValue(value string, found bool) {
	if !found {
		fmt.Fprintln(s.out, absent)
		return
	}
	fmt.Fprintln(s.out, value)
}

func parseKey(s string) (int, error) {
	key, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid key %q: %w", s, err)
	}
	return key, nil
}

func demo(table *chash.Table, out io.Writer) error {
	for i := 0; i < 10; i++ {
		table.Put(i, strconv.Itoa(i*100))
	}
	fmt.Fprintln(out, "Inserted 10 key-value pairs")

	for i := 0; i < 15; i += 2 {
		if value, found := table.Search(i); found {
			fmt.Fprintf(out, "Key %d => Value %s\n", i, value)
		} else {
			fmt.Fprintf(out, "Key %d not found\n", i)
		}
	}

	table.Put(2, "999")
	value, found := table.Search(2)
	if !found || value != "999" {
		return fmt.Errorf("update of key 2 not visible, got %q", value)
	}
	fmt.Fprintf(out, "Updated key 2 => Value %s\n", value)

	removed, _ := table.Remove(4)
	fmt.Fprintf(out, "Removed key 4 => Value %s\n", removed)
	fmt.Fprintf(out, "size=%d capacity=%d\n", table.Size(), table.Capacity())
	return nil
}
