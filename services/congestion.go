// ABOUTME: Weighted congestion risk scoring from packet counters
// ABOUTME: Independent signal for visualization, not part of the capacity search

package services

import "github.com/fronthaul-tools/capacity-planner/models"

const (
	lateWeight          = 0.6
	lossWeight          = 0.3
	congestionThreshold = 0.5
	inferredLossScore   = 0.5
)

// CongestionScorer computes a per-link congestion risk score in [0,1] from
// observed packet counters, with a binary fallback when no counters exist.
type CongestionScorer struct{}

// NewCongestionScorer creates a new scorer.
func NewCongestionScorer() *CongestionScorer {
	return &CongestionScorer{}
}

// ScoreFromStats aggregates the slot counters and weighs lateness against
// loss: score = 0.6*late_ratio + 0.3*loss_ratio, clamped to [0,1]. A link
// with tx = 0 carries no loss signal and scores zero loss.
func (c *CongestionScorer) ScoreFromStats(stats []models.PacketStat) models.CongestionScore {
	var tx, rx, late int
	for _, s := range stats {
		tx += s.TxPackets
		rx += s.RxPackets
		late += s.TooLateRx
	}

	rxGuard := rx
	if rxGuard < 1 {
		rxGuard = 1
	}
	lateRatio := float64(late) / float64(rxGuard)

	lossRatio := 0.0
	if tx > 0 {
		lossRatio = float64(tx-rx) / float64(tx)
		if lossRatio < 0 {
			lossRatio = 0
		}
	}

	score := lateWeight*lateRatio + lossWeight*lossRatio
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	return models.CongestionScore{
		Score:     score,
		LateRatio: lateRatio,
		LossRatio: lossRatio,
		Congested: score > congestionThreshold,
	}
}

// ScoreFromLoss is the fallback when packet counters are absent: 0.5 if any
// byte-level loss was inferred from the traffic replay, else 0.
func (c *CongestionScorer) ScoreFromLoss(lossCount int) models.CongestionScore {
	score := 0.0
	if lossCount > 0 {
		score = inferredLossScore
	}
	return models.CongestionScore{
		Score:     score,
		Congested: score > congestionThreshold,
		Inferred:  true,
	}
}
