package ds

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ValentinKolb/rDS/cmd/util"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	perfTestCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for rDS servers",
		Long:    "",
		RunE:    runPerf,
		PreRunE: processPerfConfig,
	}
	perfKeyPrefix  = "__test"
	perfNumThreads = 10
	perfKeySpread  = 100
	perfOps        = 10000
	perfSkip       = make([]string, 0)
)

func init() {
	// add flags
	key := "skip"
	perfTestCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. list-append,set-add)"))
	key = "threads"
	perfTestCmd.Flags().Int(key, 10, util.WrapString("Number of threads to use for the benchmark"))
	key = "keys"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How many different keys to use for the tests"))
	key = "ops"
	perfTestCmd.Flags().Int(key, 10000, util.WrapString("How many operations to perform per benchmark"))
	key = "csv"
	perfTestCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfKeySpread = viper.GetInt("keys")
	perfNumThreads = viper.GetInt("threads")
	perfOps = viper.GetInt("ops")
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	return nil
}

func runPerf(_ *cobra.Command, _ []string) error {

	fmt.Println("Performance testing tool for rDS servers")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(util.GetClientConfig().String())
	fmt.Printf("Threads: %d\n", perfNumThreads)
	fmt.Printf("Operations per benchmark: %d\n", perfOps)
	fmt.Println()

	fmt.Println("starting tests...")

	registry := gometrics.NewRegistry()

	runBenchmark(registry, "list-append", func(i int) error {
		return rpcClient.ListPush(benchKey("list", i), "test")
	})
	runBenchmark(registry, "list-range", func(i int) error {
		_, err := rpcClient.ListRange(benchKey("list", i), 0, -1)
		return err
	})
	runBenchmark(registry, "set-add", func(i int) error {
		return rpcClient.SetAdd(benchKey("set", i), strconv.Itoa(i))
	})
	runBenchmark(registry, "set-members", func(i int) error {
		_, err := rpcClient.SetMembers(benchKey("set", i))
		return err
	})
	runBenchmark(registry, "hash-set", func(i int) error {
		return rpcClient.HashSet(benchKey("hash", i), strconv.Itoa(i%10), "test")
	})
	runBenchmark(registry, "hash-get", func(i int) error {
		_, _, err := rpcClient.HashGet(benchKey("hash", i), strconv.Itoa(i%10))
		return err
	})
	runBenchmark(registry, "exists", func(i int) error {
		_, err := rpcClient.Exists(benchKey("list", i))
		return err
	})

	// cleanup all test keys
	for _, structure := range []string{"list", "set", "hash"} {
		for i := 0; i < perfKeySpread; i++ {
			if err := rpcClient.Delete(benchKey(structure, i)); err != nil {
				fmt.Printf("error deleting key %s: %v\n", benchKey(structure, i), err)
			}
		}
	}

	// Write results to csv if specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, registry); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		fmt.Println("Export complete")
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func shouldSkip(test string) bool {
	// Check if the test is in the skip list
	for _, skip := range perfSkip {
		if test == skip {
			return true
		}
	}
	return false
}

// benchKey returns a test key for the given structure, spread over perfKeySpread keys
func benchKey(structure string, i int) string {
	return fmt.Sprintf("%s-%s-%d", perfKeyPrefix, structure, i%perfKeySpread)
}

// runBenchmark runs op perfOps times across perfNumThreads goroutines,
// recording every call in a timer registered under name.
func runBenchmark(registry gometrics.Registry, name string, op func(i int) error) {
	if shouldSkip(name) {
		fmt.Printf("%-20sskipped\n", name)
		return
	}

	timer := gometrics.NewRegisteredTimer(name, registry)

	var wg sync.WaitGroup
	opsPerThread := perfOps / perfNumThreads

	for t := 0; t < perfNumThreads; t++ {
		wg.Add(1)
		go func(thread int) {
			defer wg.Done()
			for i := 0; i < opsPerThread; i++ {
				n := thread*opsPerThread + i
				start := time.Now()
				if err := op(n); err != nil {
					fmt.Printf("(%s) - error: %v\n", name, err)
				}
				timer.UpdateSince(start)
			}
		}(t)
	}
	wg.Wait()

	printResult(name, timer)
}

// printResult prints the stats of a benchmark timer in a formatted way
func printResult(test string, timer gometrics.Timer) {
	snap := timer.Snapshot()
	fmt.Printf(
		"%-20s%d ops\tmean %s/op\tp95 %s\tp99 %s\t%.0f ops/sec\n",
		test,
		snap.Count(),
		time.Duration(int64(snap.Mean())),
		time.Duration(int64(snap.Percentile(0.95))),
		time.Duration(int64(snap.Percentile(0.99))),
		snap.RateMean(),
	)
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, registry gometrics.Registry) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	config := util.GetClientConfig()

	// Write header
	header := []string{
		"Test", "Ops", "MeanNs", "P95Ns", "P99Ns", "OpsPerSec",
		"Endpoints", "TimeoutSec", "RetryCount", "ConnectionsPerEndpoint",
		"SpaceID", "Serializer", "Transport", "Threads", "Keys Count",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	// Write test results
	var writeErr error
	registry.Each(func(name string, metric interface{}) {
		timer, ok := metric.(gometrics.Timer)
		if !ok || writeErr != nil {
			return
		}
		snap := timer.Snapshot()

		row := []string{
			name,
			strconv.FormatInt(snap.Count(), 10),
			fmt.Sprintf("%.0f", snap.Mean()),
			fmt.Sprintf("%.0f", snap.Percentile(0.95)),
			fmt.Sprintf("%.0f", snap.Percentile(0.99)),
			fmt.Sprintf("%.0f", snap.RateMean()),
			strings.Join(config.Endpoints, ";"),
			strconv.Itoa(config.TimeoutSecond),
			strconv.Itoa(config.RetryCount),
			strconv.Itoa(config.ConnectionsPerEndpoint),
			strconv.FormatUint(util.GetSpaceID(), 10),
			viper.GetString("serializer"),
			viper.GetString("transport"),
			strconv.Itoa(perfNumThreads),
			strconv.Itoa(perfKeySpread),
		}

		if err := writer.Write(row); err != nil {
			writeErr = fmt.Errorf("failed to write row for test %s: %v", name, err)
		}
	})

	return writeErr
}
