// Package metrics はPrometheusメトリクスの収集と出力を提供する。
// ネットワークを持たないアプリケーションのため、スクレイプ用エンドポイントの
// 代わりにテキスト形式でのダンプ出力を提供する。
package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// MetricsCollector はメトリクス収集のインターフェース。
// オーケストレーター層から利用する。
type MetricsCollector interface {
	RecordFetchSuccess(jobCount int)
	RecordFetchFailure()
	RecordFetchLatency(duration time.Duration)
	RecordMutation(operation string)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	fetchSuccess prometheus.Counter
	fetchFail    prometheus.Counter
	fetchLatency prometheus.Histogram
	jobsCached   prometheus.Gauge
	mutations    *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		fetchSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "careerhub_fetch_success_total",
			Help: "求人一覧フェッチ成功の合計数",
		}),
		fetchFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "careerhub_fetch_fail_total",
			Help: "求人一覧フェッチ失敗の合計数",
		}),
		fetchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "careerhub_fetch_latency_seconds",
			Help:    "求人一覧フェッチのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		jobsCached: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "careerhub_jobs_cached",
			Help: "直近のフェッチでキャッシュに取り込まれた求人数",
		}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "careerhub_mutations_total",
			Help: "操作種別ごとの変更系操作の合計数",
		}, []string{"operation"}),
	}

	reg.MustRegister(
		c.fetchSuccess,
		c.fetchFail,
		c.fetchLatency,
		c.jobsCached,
		c.mutations,
	)

	return c
}

// RecordFetchSuccess はフェッチ成功と取得件数を記録する。
func (c *Collector) RecordFetchSuccess(jobCount int) {
	c.fetchSuccess.Inc()
	c.jobsCached.Set(float64(jobCount))
}

// RecordFetchFailure はフェッチ失敗を記録する。
func (c *Collector) RecordFetchFailure() {
	c.fetchFail.Inc()
}

// RecordFetchLatency はフェッチのレイテンシを記録する。
func (c *Collector) RecordFetchLatency(duration time.Duration) {
	c.fetchLatency.Observe(duration.Seconds())
}

// RecordMutation は変更系操作（create, update, delete, archive, reset）を記録する。
func (c *Collector) RecordMutation(operation string) {
	c.mutations.WithLabelValues(operation).Inc()
}

// WriteTo はレジストリの内容をPrometheusテキスト形式でwに書き出す。
func WriteTo(gatherer prometheus.Gatherer, w io.Writer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return fmt.Errorf("メトリクスの収集に失敗しました: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if err := enc.Encode(family); err != nil {
			return fmt.Errorf("メトリクスのエンコードに失敗しました: %w", err)
		}
	}

	return nil
}
