// Command b2bench builds the scenes described in a YAML bench file, steps
// them and prints timing and world statistics.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/ByteArena/box2d-classic"
)

type result struct {
	Steps    int
	Elapsed  time.Duration
	MaxStep  float64
	Bodies   int
	Awake    int
	Contacts int
	Pairs    int
	Proxies  int
}

func run(bench BenchFile, dump bool) (result, error) {
	world, err := bench.Build()
	if err != nil {
		return result{}, err
	}

	res := result{Steps: bench.Steps}
	start := time.Now()
	for i := 0; i < bench.Steps; i++ {
		bench.World.Step(world)
		if p := world.GetProfile(); p.Step > res.MaxStep {
			res.MaxStep = p.Step
		}
	}
	res.Elapsed = time.Since(start)

	res.Bodies = world.GetBodyCount()
	for b := world.GetBodyList(); b != nil; b = b.GetNext() {
		if b.IsAwake() && !b.IsStatic() {
			res.Awake++
		}
	}
	res.Contacts = world.GetContactCount()
	res.Pairs = world.GetPairCount()
	res.Proxies = world.GetProxyCount()

	world.Validate()

	if dump {
		world.Dump()
	}

	return res, nil
}

func report(w io.Writer, name string, res result) {
	avg := 0.0
	if res.Steps > 0 {
		avg = float64(res.Elapsed.Microseconds()) / 1000.0 / float64(res.Steps)
	}

	fmt.Fprintf(w, "%s: %d steps in %v (avg %.3f ms, max %.3f ms)\n", name, res.Steps, res.Elapsed.Round(time.Millisecond), avg, res.MaxStep)
	fmt.Fprintf(w, "  bodies=%d awake=%d contacts=%d pairs=%d proxies=%d\n", res.Bodies, res.Awake, res.Contacts, res.Pairs, res.Proxies)
}

func runFile(filename string, steps int, dump bool) {
	bench, err := LoadBench(filename)
	if err != nil {
		log.Printf("b2bench: %v", err)
		return
	}

	if steps > 0 {
		bench.Steps = steps
	}

	res, err := run(bench, dump)
	if err != nil {
		log.Printf("b2bench: %v", err)
		return
	}

	report(os.Stdout, filename, res)
}

func main() {
	var (
		steps   = flag.Int("steps", 0, "override the number of steps in the bench file")
		watch   = flag.Bool("watch", false, "rerun the bench each time the file changes")
		dump    = flag.Bool("dump", false, "dump the final world as Go code")
		verbose = flag.Bool("v", false, "log engine messages to stderr")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: b2bench [flags] bench.yaml\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	filename := flag.Arg(0)

	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if *verbose {
		box2d.SetB2Logger(log.New(os.Stderr, "box2d: ", log.LstdFlags|log.Lmicroseconds))
	}

	if !*watch {
		if _, err := LoadBench(filename); err != nil {
			log.Fatalf("b2bench: %v", err)
		}
		runFile(filename, *steps, *dump)
		return
	}

	watcher, err := NewWatcher(filename)
	if err != nil {
		log.Fatalf("b2bench: watch %s: %v", filename, err)
	}
	defer watcher.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	runFile(filename, *steps, *dump)
	log.Printf("b2bench: watching %s", filename)

	for {
		select {
		case name := <-watcher.Events:
			log.Printf("b2bench: %s changed, reloading", name)
			runFile(filename, *steps, *dump)
		case err := <-watcher.Errors:
			log.Printf("b2bench: watch: %v", err)
		case <-interrupt:
			return
		}
	}
}
