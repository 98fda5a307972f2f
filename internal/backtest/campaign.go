package backtest

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/acagil/borsabot/internal/contracts"
)

// TickerStat summarizes all trades of one ticker across a campaign.
type TickerStat struct {
	Ticker      string  `json:"ticker"`
	Trades      int     `json:"trades"`
	Successes   int     `json:"successes"`
	SuccessRate float64 `json:"success_rate"`
	AvgReturn   float64 `json:"avg_return"`
}

// CampaignReport is the aggregate result of a multi-day backtest.
type CampaignReport struct {
	StartDate   time.Time                 `json:"start_date"`
	EndDate     time.Time                 `json:"end_date"`
	TradingDays int                       `json:"trading_days"`
	Trades      []contracts.BacktestTrade `json:"trades"`

	TotalTrades int `json:"total_trades"`
	Successes   int `json:"successes"`
	Neutrals    int `json:"neutrals"`
	Losses      int `json:"losses"`

	WinRate    float64 `json:"win_rate"`
	NeutralPct float64 `json:"neutral_pct"`
	LossPct    float64 `json:"loss_pct"`

	AvgReturn        float64 `json:"avg_return"`
	AvgSuccessReturn float64 `json:"avg_success_return"`
	AvgLossReturn    float64 `json:"avg_loss_return"`
	RiskReward       float64 `json:"risk_reward"`

	BestTrade  *contracts.BacktestTrade `json:"best_trade,omitempty"`
	WorstTrade *contracts.BacktestTrade `json:"worst_trade,omitempty"`

	TickerStats []TickerStat  `json:"ticker_stats"`
	Elapsed     time.Duration `json:"elapsed"`
}

// Empty reports whether the campaign produced no trades. An empty
// campaign is a valid result, not a failure.
func (r *CampaignReport) Empty() bool {
	return r.TotalTrades == 0
}

const maxTickerStats = 10

// RunCampaign replays every business day in [start, end] and aggregates
// the resulting trades. Weekends are skipped; exchange holidays fall
// out naturally because they yield no forward data.
func (r *Runner) RunCampaign(ctx context.Context, start, end time.Time, tickers []string) (*CampaignReport, error) {
	start = truncateDay(start)
	end = truncateDay(end)
	if end.Before(start) {
		return nil, fmt.Errorf("invalid campaign range: end %s before start %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	began := time.Now()

	report := &CampaignReport{
		StartDate: start,
		EndDate:   end,
	}

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("campaign cancelled: %w", err)
		}

		report.TradingDays++
		trades := r.RunDay(ctx, day, tickers)
		report.Trades = append(report.Trades, trades...)
	}

	aggregate(report)
	report.Elapsed = time.Since(began)

	r.logger.WithFields(map[string]interface{}{
		"start":        start.Format("2006-01-02"),
		"end":          end.Format("2006-01-02"),
		"trading_days": report.TradingDays,
		"trades":       report.TotalTrades,
		"win_rate":     report.WinRate,
	}).Info("Backtest campaign finished")

	return report, nil
}

// aggregate fills the summary fields of a report from its trade list.
func aggregate(report *CampaignReport) {
	report.TotalTrades = len(report.Trades)
	if report.TotalTrades == 0 {
		return
	}

	var sumAll, sumSuccess, sumLoss float64
	perTicker := make(map[string]*TickerStat)

	for i := range report.Trades {
		trade := &report.Trades[i]
		sumAll += trade.ReturnPct

		switch trade.Outcome {
		case contracts.OutcomeSuccess:
			report.Successes++
			sumSuccess += trade.ReturnPct
		case contracts.OutcomeNeutral:
			report.Neutrals++
		case contracts.OutcomeLoss:
			report.Losses++
			sumLoss += trade.ReturnPct
		}

		if report.BestTrade == nil || trade.ReturnPct > report.BestTrade.ReturnPct {
			report.BestTrade = trade
		}
		if report.WorstTrade == nil || trade.ReturnPct < report.WorstTrade.ReturnPct {
			report.WorstTrade = trade
		}

		stat, ok := perTicker[trade.Ticker]
		if !ok {
			stat = &TickerStat{Ticker: trade.Ticker}
			perTicker[trade.Ticker] = stat
		}
		stat.Trades++
		stat.AvgReturn += trade.ReturnPct
		if trade.Outcome == contracts.OutcomeSuccess {
			stat.Successes++
		}
	}

	total := float64(report.TotalTrades)
	report.WinRate = round1(float64(report.Successes) / total * 100)
	report.NeutralPct = round1(float64(report.Neutrals) / total * 100)
	report.LossPct = round1(float64(report.Losses) / total * 100)
	report.AvgReturn = round2(sumAll / total)

	if report.Successes > 0 {
		report.AvgSuccessReturn = round2(sumSuccess / float64(report.Successes))
	}
	if report.Losses > 0 {
		report.AvgLossReturn = round2(sumLoss / float64(report.Losses))
	}
	// Risk/reward stays zero without both a success and a loss leg.
	if report.AvgSuccessReturn > 0 && report.AvgLossReturn < 0 {
		report.RiskReward = round2(report.AvgSuccessReturn / -report.AvgLossReturn)
	}

	stats := make([]TickerStat, 0, len(perTicker))
	for _, stat := range perTicker {
		stat.SuccessRate = round1(float64(stat.Successes) / float64(stat.Trades) * 100)
		stat.AvgReturn = round2(stat.AvgReturn / float64(stat.Trades))
		stats = append(stats, *stat)
	}
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].SuccessRate != stats[j].SuccessRate {
			return stats[i].SuccessRate > stats[j].SuccessRate
		}
		return stats[i].Trades > stats[j].Trades
	})
	if len(stats) > maxTickerStats {
		stats = stats[:maxTickerStats]
	}
	report.TickerStats = stats
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
