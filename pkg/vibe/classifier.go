package vibe

import (
	"context"
	"fmt"
	"time"

	"evol-jewels-io/stylist/pkg/models"
	"evol-jewels-io/stylist/pkg/util"
)

const DefaultOracleTimeout = 22 * time.Second

// Oracle is an optional text-classification backend. Implementations return an error for any
// failure; the classifier decides what to do with it.
type Oracle interface {
	Name() string
	Classify(ctx context.Context, s models.SurveyInput) (Decision, error)
}

type Result struct {
	Vibe        string
	Explanation string
	Engine      models.EngineType
	// OracleErr is set when an oracle was configured and the rule tier answered instead.
	OracleErr error
}

type tier func(ctx context.Context, s models.SurveyInput) (Result, error)

type Classifier struct {
	table   *Table
	oracle  Oracle
	timeout time.Duration
}

// NewClassifier builds a classifier. A nil oracle disables the oracle tier.
func NewClassifier(table *Table, oracle Oracle, timeout time.Duration) *Classifier {
	if timeout <= 0 {
		timeout = DefaultOracleTimeout
	}
	return &Classifier{table: table, oracle: oracle, timeout: timeout}
}

func (c *Classifier) Table() *Table { return c.table }

func (c *Classifier) OracleEnabled() bool { return c.oracle != nil }

// Classify never fails: oracle errors degrade to the rule tier.
func (c *Classifier) Classify(ctx context.Context, s models.SurveyInput) Result {
	tiers := make([]tier, 0, 2)
	if c.oracle != nil {
		tiers = append(tiers, c.oracleTier)
	}

	var oracleErr error
	for _, t := range tiers {
		res, err := t(ctx, s)
		if err == nil {
			return res
		}
		oracleErr = err
		util.Logger().Warn().Err(err).Str("oracle", c.oracle.Name()).Msg("vibe oracle failed, falling back to rules")
	}

	res := c.RulesOnly(s)
	res.OracleErr = oracleErr
	return res
}

// RulesOnly runs the deterministic tier alone.
func (c *Classifier) RulesOnly(s models.SurveyInput) Result {
	label := c.table.MatchRules(s)
	return Result{
		Vibe:        label,
		Explanation: c.table.Explanation(label),
		Engine:      models.EngineRules,
	}
}

type oracleReply struct {
	decision Decision
	err      error
}

// oracleTier bounds the call by the classifier timeout and returns as soon as it expires,
// even if the oracle does not honour cancellation.
func (c *Classifier) oracleTier(ctx context.Context, s models.SurveyInput) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	done := make(chan oracleReply, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- oracleReply{err: fmt.Errorf("oracle panic: %v", r)}
			}
		}()
		d, err := c.oracle.Classify(ctx, s)
		done <- oracleReply{decision: d, err: err}
	}()

	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case reply := <-done:
		if reply.err != nil {
			return Result{}, reply.err
		}
		if !c.table.Valid(reply.decision.Vibe) {
			return Result{}, ErrInvalidVibe
		}
		return Result{
			Vibe:        reply.decision.Vibe,
			Explanation: reply.decision.Explanation,
			Engine:      models.EngineAI,
		}, nil
	}
}
