package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"cloud.google.com/go/storage"
	"github.com/carbocation/microbemap"
	"github.com/carbocation/microbemap/compileinfo"
	"github.com/carbocation/microbemap/overlay"
	"github.com/carbocation/microbemap/taxa"
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()

		log.Println("Example JSONConfig file layout:")
		bts, err := json.MarshalIndent(overlay.DefaultConfig(), "", "  ")
		if err == nil {
			log.Println(string(bts))
		}
	}
}

func main() {
	var configPath, rankName, name, colorCode, aggregation, output, listRank string
	var scale float64
	var previewWidth int
	var hideName, autoscale, version bool

	flag.StringVar(&configPath, "config", "", "JSONConfig file describing the abundance table and the image resources")
	flag.StringVar(&rankName, "rank", "Genus", "Rank to query: "+taxa.Names())
	flag.StringVar(&name, "name", "", "(Optional) Name to render at -rank. If omitted, an interactive prompt starts.")
	flag.StringVar(&colorCode, "color", "", "(Optional) Tint, as #rrggbb or r,g,b. Overrides the config.")
	flag.StringVar(&aggregation, "aggregation", "", "(Optional) mean or sum. Overrides the config.")
	flag.Float64Var(&scale, "scale", 0, "(Optional) Abundance multiplier before clamping to full opacity. Overrides the config.")
	flag.BoolVar(&autoscale, "autoscale", false, "Pick the scale at which the most abundant region is fully opaque.")
	flag.BoolVar(&hideName, "hide_name", false, "Do not print the taxonomic breadcrumb on the image.")
	flag.StringVar(&output, "output", "", "(Optional) Where to write the image. Defaults to <rank>_<name>.png in the current folder.")
	flag.IntVar(&previewWidth, "preview_width", 0, "(Optional) If set, also write a preview of this width next to each image.")
	flag.StringVar(&listRank, "list", "", "(Optional) Print every name known at this rank and exit.")
	flag.BoolVar(&version, "version", false, "Print build information and exit.")
	flag.Parse()

	if version {
		fmt.Println(compileinfo.Get())
		return
	}

	log.Println("microbemap", compileinfo.Get().Version())

	if configPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	config, err := overlay.ParseJSONConfigFromPath(configPath)
	if err != nil {
		log.Println(err)
		flag.Usage()
		os.Exit(1)
	}

	// Only flags that were actually passed override the config
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "color":
			config.Color = colorCode
		case "aggregation":
			config.Aggregation = aggregation
		case "scale":
			config.Scale = scale
		}
	})
	if err := config.Validate(); err != nil {
		log.Fatalln(err)
	}

	// Initialize the Google Storage client only if we're pointing to Google
	// Storage paths.
	var client *storage.Client
	if microbemap.AnyGoogleStoragePath(append(config.Paths(), output)...) {
		client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
		defer client.Close()
	}

	started := time.Now()
	sess, err := newSession(config, client)
	if err != nil {
		log.Fatalln(err)
	}
	sess.hideName = hideName
	sess.autoscale = autoscale
	sess.previewWidth = previewWidth
	log.Printf("Loaded %d strains and %d masks in %s\n", sess.strainCount, sess.compositor.Library().Len(), time.Since(started))

	if listRank != "" {
		rank, err := taxa.ParseRank(listRank)
		if err != nil {
			log.Fatalln(err)
		}
		for _, n := range sess.index.Names(rank) {
			fmt.Println(n)
		}
		return
	}

	if name != "" {
		if err := runOnce(sess, rankName, name, output); err != nil {
			log.Fatalln(err)
		}
		return
	}

	if err := runInteractive(sess, os.Stdin, os.Stdout); err != nil {
		log.Fatalln(err)
	}

	log.Println("Quitting")
}

func runOnce(sess *session, rankName, name, output string) error {
	rank, err := taxa.ParseRank(rankName)
	if err != nil {
		return err
	}

	r, err := sess.render(rank, name)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("No strains found with %s %q", rank, name)
	}

	if output == "" {
		output = r.defaultFilename()
	}

	if err := sess.save(r, output); err != nil {
		return err
	}

	log.Printf("Wrote %s (%s)\n", output, r.describe())

	return nil
}
