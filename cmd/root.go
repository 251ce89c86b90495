package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/fatih/color"
	"github.com/tantalor93/dnsblast/internal/sysutil"
	"github.com/tantalor93/dnsblast/pkg/blast"
	"github.com/tantalor93/dnsblast/pkg/reporter"
)

var (
	// Version is set during release of project during build process.
	Version = "development"

	author = "Ondrej Benkovsky <obenky@gmail.com>"
)

var (
	pApp = kingpin.New("dnsblast", "A concurrent DNS query load generator.").Author(author)

	bl blast.Blast

	domainFile   string
	timeoutMs    int64
	colorEnabled bool
)

func init() {
	pApp.Flag("threads", "Number of concurrent workers, each sending queries over its own UDP endpoint.").
		Short('p').Default(strconv.Itoa(blast.DefaultThreads)).Uint32Var(&bl.Threads)

	pApp.Flag("number", "Number of queries each worker issues. Note that the total number of queries issued = threads*number.").
		Short('n').Default(strconv.Itoa(blast.DefaultCount)).Int64Var(&bl.Count)

	pApp.Flag("domains", "Path to a newline-delimited file with domain names, queries pick a name from it at random. Blank and malformed lines are skipped.").
		Short('d').Default(blast.DefaultDomainFile).StringVar(&domainFile)

	pApp.Flag("record", "Query record type.").
		Short('r').Default(blast.DefaultRecordType).EnumVar(&bl.RecordType, "A", "AAAA")

	pApp.Flag("server", "Target resolver IP:port to flood. When no port is given, :53 is appended.").
		Short('s').Required().StringVar(&bl.Server)

	pApp.Flag("timeout", "Per-request response timeout in milliseconds.").
		Short('t').Default(strconv.FormatInt(int64(blast.DefaultTimeout/time.Millisecond), 10)).Int64Var(&timeoutMs)

	pApp.Flag("debug", "Debug level, 0: progress bar only, 1: print a progress line per status event, 2: print all info.").
		Short('v').Default("0").IntVar(&bl.Debug)

	pApp.Flag("rate-limit", "Apply a global queries / second rate limit.").
		Short('l').Default("0").IntVar(&bl.Rate)

	pApp.Flag("silent", "Disable stdout.").Default("false").BoolVar(&bl.Silent)

	pApp.Flag("color", "ANSI Color output.").Default("true").BoolVar(&colorEnabled)
}

const (
	fileNoBuffer = 9 // app itself needs about 9 for libs
)

// Execute starts main logic of command.
func Execute() {
	pApp.Version(Version)
	kingpin.MustParse(pApp.Parse(os.Args[1:]))

	color.NoColor = !colorEnabled

	bl.Timeout = time.Duration(timeoutMs) * time.Millisecond
	bl.Writer = os.Stdout

	domains, err := blast.LoadDomainFile(domainFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if len(domains) == 0 {
		fmt.Fprintf(os.Stderr, "Domain file %q contains no usable domain names.\n", domainFile)
		os.Exit(1)
	}
	bl.Domains = domains

	lim, err := sysutil.RlimitFiles()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Cannot check limit of number of files. Skipping check. Please make sure it is sufficient manually.", err)
	} else {
		needed := uint64(bl.Threads) + uint64(fileNoBuffer)
		if lim < needed {
			fmt.Fprintf(os.Stderr, "Current process limit for number of files is %d and insufficient for %d workers.\n", lim, bl.Threads)
			os.Exit(1)
		}
	}

	sigsInt := make(chan os.Signal, 8)
	signal.Notify(sigsInt, syscall.SIGINT)

	defer close(sigsInt)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		_, ok := <-sigsInt
		if !ok {
			// standard exit based on channel close
			return
		}
		fmt.Fprintf(os.Stderr, "\nCancelling run ^C, again to terminate now.\n")
		cancel()
		<-sigsInt
		os.Exit(1)
	}()

	start := time.Now()
	progress, stats, err := bl.Run(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	end := time.Now()

	reporter.PrintReport(&bl, progress, stats, end.Sub(start))
}
