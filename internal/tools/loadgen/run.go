package loadgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type Config struct {
	BaseURL     string
	Profile     string
	Duration    time.Duration
	RPS         int
	Concurrency int
	Seed        uint64
	LearnerIDs  []string
}

type Result struct {
	TotalRequests int64
	Failures      int64
	Status2xx     int64
	Status4xx     int64
	Status5xx     int64
	Status429     int64
}

type request struct {
	method string
	path   string
	body   []byte
}

// generator yields the next request of a profile. It is only called from the
// dispatch loop, so it may hold unsynchronized state.
type generator func() request

func Run(ctx context.Context, cfg Config) (Result, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Duration <= 0 {
		cfg.Duration = 10 * time.Second
	}
	if cfg.RPS <= 0 {
		cfg.RPS = 15
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 5
	}
	if len(cfg.LearnerIDs) == 0 {
		cfg.LearnerIDs = []string{"1", "2", "3"}
	}

	next, err := generatorForProfile(cfg.Profile, cfg.LearnerIDs, rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)))
	if err != nil {
		return Result{}, err
	}
	client := &http.Client{Timeout: 5 * time.Second}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")

	ctx, cancel := context.WithTimeout(ctx, cfg.Duration)
	defer cancel()

	var total, failures, s2xx, s4xx, s5xx, s429 int64
	jobs := make(chan request, cfg.Concurrency*2)
	wg := sync.WaitGroup{}

	for i := 0; i < cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				req, err := http.NewRequestWithContext(ctx, job.method, baseURL+job.path, bytes.NewReader(job.body))
				if err != nil {
					atomic.AddInt64(&failures, 1)
					continue
				}
				if job.body != nil {
					req.Header.Set("Content-Type", "application/json")
				}
				resp, err := client.Do(req)
				if err != nil {
					atomic.AddInt64(&failures, 1)
					continue
				}
				_ = resp.Body.Close()
				atomic.AddInt64(&total, 1)
				switch {
				case resp.StatusCode >= 200 && resp.StatusCode < 300:
					atomic.AddInt64(&s2xx, 1)
				case resp.StatusCode == http.StatusTooManyRequests:
					atomic.AddInt64(&s429, 1)
					atomic.AddInt64(&s4xx, 1)
				case resp.StatusCode >= 400 && resp.StatusCode < 500:
					atomic.AddInt64(&s4xx, 1)
				case resp.StatusCode >= 500:
					atomic.AddInt64(&s5xx, 1)
				}
			}
		}()
	}

	ticker := time.NewTicker(time.Second / time.Duration(cfg.RPS))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return Result{
				TotalRequests: atomic.LoadInt64(&total),
				Failures:      atomic.LoadInt64(&failures),
				Status2xx:     atomic.LoadInt64(&s2xx),
				Status4xx:     atomic.LoadInt64(&s4xx),
				Status5xx:     atomic.LoadInt64(&s5xx),
				Status429:     atomic.LoadInt64(&s429),
			}, nil
		case <-ticker.C:
			select {
			case jobs <- next():
			case <-ctx.Done():
			}
		}
	}
}

func generatorForProfile(profile string, learners []string, rng *rand.Rand) (generator, error) {
	reads := func() request {
		learner := learners[rng.IntN(len(learners))]
		switch rng.IntN(4) {
		case 0:
			return request{method: http.MethodGet, path: "/api/v1/learners/" + learner + "/certificates"}
		case 1:
			return request{method: http.MethodGet, path: "/api/v1/learners/" + learner + "/certificates/stats"}
		case 2:
			return request{method: http.MethodGet, path: "/api/v1/learners/search?q=jo"}
		default:
			return request{method: http.MethodGet, path: "/api/v1/certificates?status=verified"}
		}
	}
	classify := func() request {
		body, _ := json.Marshal(map[string]any{
			"qr_check":                rng.Float64() < 0.7,
			"blockchain_verification": rng.Float64() < 0.6,
			"api_verification":        rng.Float64() < 0.8,
			"ai_score":                60 + rng.IntN(41),
		})
		return request{method: http.MethodPost, path: "/api/v1/verification/classify", body: body}
	}
	create := func() request {
		body, _ := json.Marshal(map[string]any{
			"learner_id":  learners[rng.IntN(len(learners))],
			"title":       fmt.Sprintf("Load Test Certificate %d", rng.IntN(1_000_000)),
			"issuer":      "Load Generator",
			"date_issued": time.Now().UTC().Format("2006-01-02"),
			"nsqf_level":  1 + rng.IntN(10),
			"link_url":    "https://example.com/verify/loadgen",
		})
		return request{method: http.MethodPost, path: "/api/v1/certificates", body: body}
	}

	switch strings.ToLower(profile) {
	case "read":
		return reads, nil
	case "", "mixed":
		return func() request {
			if rng.IntN(4) == 0 {
				return classify()
			}
			return reads()
		}, nil
	case "write-heavy":
		return func() request {
			if rng.IntN(2) == 0 {
				return create()
			}
			return classify()
		}, nil
	case "error-heavy":
		return func() request {
			switch rng.IntN(3) {
			case 0:
				return request{method: http.MethodGet, path: "/api/v1/certificates/does-not-exist"}
			case 1:
				return request{method: http.MethodPost, path: "/api/v1/verification/classify", body: []byte(`{"ai_score":7}`)}
			default:
				return request{method: http.MethodPost, path: "/api/v1/certificates", body: []byte(`{"title":""}`)}
			}
		}, nil
	default:
		return nil, fmt.Errorf("unknown profile: %s", profile)
	}
}
