package main

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/carbocation/microbemap/abundance"
	"github.com/carbocation/microbemap/overlay"
	"github.com/carbocation/microbemap/taxa"
)

const helpText = `Commands:
  <rank> <name>     render a group, e.g. "genus Pseudomonas" or "id ASV12"
  list <rank>       print the names known at a rank
  save [path]       save the last rendering (default <rank>_<name>.png)
  color <code>      set the tint, as #rrggbb or r,g,b
  scale <x|auto>    set the abundance multiplier
  mode <mean|sum>   set how strains are combined
  hide / show       hide or show the breadcrumb label
  regions           list the most abundant regions of the last rendering
  q                 quit`

// runInteractive reads commands until EOF or q. Problems with a single
// command are reported to out and the loop carries on.
func runInteractive(sess *session, in io.Reader, out io.Writer) error {
	rdr := bufio.NewScanner(in)
	var last *rendering

	fmt.Fprintln(out, "We are aware of", sess.strainCount, "strains")
	fmt.Fprintln(out, "Enter 'help' for a list of commands")
	fmt.Fprintln(out, "Enter 'q' to quit")
	fmt.Fprintln(out, "---------------------")

	for {
		fmt.Fprint(out, "[rank name]> ")
		if !rdr.Scan() {
			return rdr.Err()
		}

		cmd, arg := parseCommand(rdr.Text())

		switch cmd {
		case "":
			continue
		case "q", "quit", "exit":
			fmt.Fprintln(out, "quitting")
			return nil
		case "help", "?":
			fmt.Fprintln(out, helpText)
		case "list":
			rank, err := taxa.ParseRank(arg)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			for _, n := range sess.index.Names(rank) {
				fmt.Fprintln(out, n)
			}
		case "color":
			tint, err := overlay.ParseColor(arg)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			sess.tint = tint
			fmt.Fprintln(out, "color is now", overlay.ColorCode(tint))
		case "scale":
			if strings.EqualFold(arg, "auto") {
				sess.autoscale = true
				fmt.Fprintln(out, "scale is now automatic")
				continue
			}
			v, err := strconv.ParseFloat(arg, 64)
			if err != nil || !(v > 0) {
				fmt.Fprintf(out, "scale must be a positive number, got %q\n", arg)
				continue
			}
			sess.scale, sess.autoscale = v, false
			fmt.Fprintln(out, "scale is now", v)
		case "mode":
			mode, err := abundance.ParseMode(arg)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			sess.mode = mode
			fmt.Fprintln(out, "aggregation is now", mode)
		case "hide":
			sess.hideName = true
			fmt.Fprintln(out, "label hidden")
		case "show":
			sess.hideName = false
			fmt.Fprintln(out, "label shown")
		case "save":
			if last == nil {
				fmt.Fprintln(out, "nothing has been rendered yet")
				continue
			}
			path := arg
			if path == "" {
				path = last.defaultFilename()
			}
			if err := sess.save(last, path); err != nil {
				// A failed save leaves the session as it was
				fmt.Fprintln(out, "could not save:", err)
				continue
			}
			fmt.Fprintln(out, "saved", path)
		case "regions":
			if last == nil {
				fmt.Fprintln(out, "nothing has been rendered yet")
				continue
			}
			printRegions(out, sess, last, 10)
		default:
			rank, err := taxa.ParseRank(cmd)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			if arg == "" {
				fmt.Fprintln(out, "Input name of strain")
				continue
			}

			r, err := sess.render(rank, arg)
			if err != nil {
				return err
			}
			if r == nil {
				fmt.Fprintf(out, "No strains found with name %q\n", arg)
				continue
			}

			last = r
			fmt.Fprintf(out, "%s: %s\n", strings.Join(r.Label, overlay.LabelSeparator), r.describe())
		}
	}
}

// parseCommand splits a line into its first word (lower cased) and the rest,
// which keeps its case and inner spaces so names like "Candidatus Foo" work.
func parseCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", ""
	}

	parts := strings.SplitN(line, " ", 2)
	cmd := strings.ToLower(parts[0])
	if len(parts) == 1 {
		return cmd, ""
	}

	return cmd, strings.TrimSpace(parts[1])
}

func printRegions(out io.Writer, sess *session, r *rendering, n int) {
	lib := sess.compositor.Library()

	order := make([]int, 0, len(r.Abundances))
	for i, v := range r.Abundances {
		if v > 0 {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(i, j int) bool { return r.Abundances[order[i]] > r.Abundances[order[j]] })

	if len(order) > n {
		order = order[:n]
	}
	for _, i := range order {
		fmt.Fprintf(out, "%s\t%.4g\n", lib.Region(i), r.Abundances[i])
	}
}
