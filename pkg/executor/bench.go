package executor

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/surge-http/surge/pkg/model"
)

// BenchParams configures a load run against a single stored request.
type BenchParams struct {
	Requests    int // total request budget
	Concurrency int // parallel workers
	RPS         int // rate limit across all workers, 0 = unlimited
}

// BenchResult aggregates latency and status statistics for a load run.
type BenchResult struct {
	TotalRequests int64
	Successful    int64
	Failed        int64
	Duration      time.Duration
	Throughput    float64 // requests per second
	LatencyP50    time.Duration
	LatencyP95    time.Duration
	LatencyP99    time.Duration
	MinLatency    time.Duration
	MaxLatency    time.Duration
	AvgLatency    time.Duration
	ErrorRate     float64 // percent
	StatusCounts  map[int]int64
}

// Bench fires params.Requests copies of req at the target and reports
// latency percentiles. Failed sends (transport errors) count toward the
// error rate; error status codes count as successes, consistent with the
// single-request pipeline.
func (e *Executor) Bench(ctx context.Context, req *model.Request, v map[string]string, params BenchParams) (*BenchResult, error) {
	if params.Requests <= 0 {
		return nil, &ValidationError{Reason: "request count must be greater than 0"}
	}
	if params.Concurrency <= 0 {
		return nil, &ValidationError{Reason: "concurrency must be greater than 0"}
	}

	var limiter *rate.Limiter
	if params.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(params.RPS), params.RPS)
	}

	var (
		total, successful, failed int64
		latencies                 []time.Duration
		latenciesMu               sync.Mutex
		statusCounts              = make(map[int]int64)
		statusMu                  sync.Mutex
		remaining                 = int64(params.Requests)
		wg                        sync.WaitGroup
	)

	startTime := time.Now()

	for i := 0; i < params.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if atomic.AddInt64(&remaining, -1) < 0 {
					return
				}
				select {
				case <-ctx.Done():
					return
				default:
				}
				if limiter != nil {
					if err := limiter.Wait(ctx); err != nil {
						return
					}
				}

				reqStart := time.Now()
				resp, err := e.Execute(req, v)
				elapsed := time.Since(reqStart)

				atomic.AddInt64(&total, 1)
				if err != nil {
					atomic.AddInt64(&failed, 1)
					continue
				}
				atomic.AddInt64(&successful, 1)

				latenciesMu.Lock()
				latencies = append(latencies, elapsed)
				latenciesMu.Unlock()

				statusMu.Lock()
				statusCounts[resp.Status]++
				statusMu.Unlock()
			}
		}()
	}

	wg.Wait()
	totalDuration := time.Since(startTime)

	result := &BenchResult{
		TotalRequests: total,
		Successful:    successful,
		Failed:        failed,
		Duration:      totalDuration,
		StatusCounts:  statusCounts,
	}
	if total > 0 {
		result.Throughput = float64(total) / totalDuration.Seconds()
		result.ErrorRate = float64(failed) / float64(total) * 100
	}

	if len(latencies) > 0 {
		sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
		result.MinLatency = latencies[0]
		result.MaxLatency = latencies[len(latencies)-1]
		result.LatencyP50 = latencies[percentileIndex(len(latencies), 50)]
		result.LatencyP95 = latencies[percentileIndex(len(latencies), 95)]
		result.LatencyP99 = latencies[percentileIndex(len(latencies), 99)]

		var sum time.Duration
		for _, lat := range latencies {
			sum += lat
		}
		result.AvgLatency = sum / time.Duration(len(latencies))
	}

	return result, nil
}

// percentileIndex maps a percentile to an index into a sorted sample.
func percentileIndex(n, percentile int) int {
	if n == 0 {
		return 0
	}
	index := int(math.Ceil(float64(n)*float64(percentile)/100.0)) - 1
	if index < 0 {
		index = 0
	}
	if index >= n {
		index = n - 1
	}
	return index
}

// Format renders the result as plain text for the CLI.
func (r *BenchResult) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Load Test Results\n=================\n\n")
	fmt.Fprintf(&sb, "Duration: %.2fs\n", r.Duration.Seconds())
	fmt.Fprintf(&sb, "Total Requests: %d\n", r.TotalRequests)
	fmt.Fprintf(&sb, "Successful: %d\nFailed: %d\nError Rate: %.2f%%\n\n", r.Successful, r.Failed, r.ErrorRate)
	fmt.Fprintf(&sb, "Throughput: %.2f req/sec\n\n", r.Throughput)
	fmt.Fprintf(&sb, "Latency:\n  Min: %v\n  Avg: %v\n  P50: %v\n  P95: %v\n  P99: %v\n  Max: %v\n",
		r.MinLatency, r.AvgLatency, r.LatencyP50, r.LatencyP95, r.LatencyP99, r.MaxLatency)

	if len(r.StatusCounts) > 0 {
		sb.WriteString("\nStatus Codes:\n")
		codes := make([]int, 0, len(r.StatusCounts))
		for code := range r.StatusCounts {
			codes = append(codes, code)
		}
		sort.Ints(codes)
		for _, code := range codes {
			fmt.Fprintf(&sb, "  %d: %d\n", code, r.StatusCounts[code])
		}
	}
	return sb.String()
}
