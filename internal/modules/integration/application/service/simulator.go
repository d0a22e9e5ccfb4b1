package service

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"
)

// Simulator 模拟对外部系统的连接测试与数据同步
type Simulator struct {
	Delay time.Duration
	// FailureRate 0~1，单次操作失败的概率
	FailureRate float64

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewSimulator(delay time.Duration, failureRate float64, seed uint64) *Simulator {
	return &Simulator{
		Delay:       delay,
		FailureRate: failureRate,
		rnd:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// wait 模拟耗时，请求取消时提前返回
func (s *Simulator) wait(ctx context.Context) error {
	if s.Delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// roll 返回本次是否成功以及同步条数
func (s *Simulator) roll() (bool, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rnd.Float64() < s.FailureRate {
		return false, 0
	}
	return true, 50 + s.rnd.Int64N(950)
}
