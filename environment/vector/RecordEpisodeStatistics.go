package vector

import (
	"gorgonia.org/tensor"

	"github.com/samuelfneumann/govecenv/environment"
)

// Episode is the info key under which RecordEpisodeStatistics
// surfaces the statistics of episodes that ended during a Step call.
// The value is a []EpisodeStats with one entry per ended episode.
const Episode = "episode"

// EpisodeStats summarizes a completed episode of one sub-environment
type EpisodeStats struct {
	Env    int
	Return float64
	Length int
}

// RecordEpisodeStatistics wraps a VectorEnv and keeps per-environment
// episode bookkeeping: the cumulative reward and the number of steps
// of the running episode. When a sub-environment's episode ends, the
// completed episode's statistics are written into the step info under
// Episode.
//
// RecordEpisodeStatistics itself implements the VectorEnv interface
// and is therefore itself a vectorized environment.
type RecordEpisodeStatistics struct {
	VectorEnv
	returns []float64
	lengths []int
}

// NewRecordEpisodeStatistics wraps an existing vectorized environment
func NewRecordEpisodeStatistics(env VectorEnv) *RecordEpisodeStatistics {
	return &RecordEpisodeStatistics{
		VectorEnv: env,
		returns:   make([]float64, env.NumEnvs()),
		lengths:   make([]int, env.NumEnvs()),
	}
}

// Reset resets every sub-environment and clears the episode
// bookkeeping
func (r *RecordEpisodeStatistics) Reset() (*tensor.Dense,
	environment.Info, error) {
	obs, info, err := r.VectorEnv.Reset()
	if err != nil {
		return nil, nil, err
	}

	for i := range r.returns {
		r.returns[i] = 0
		r.lengths[i] = 0
	}
	return obs, info, nil
}

// Step steps every sub-environment, accumulating episode returns and
// lengths and surfacing the statistics of ended episodes
func (r *RecordEpisodeStatistics) Step(actions *tensor.Dense) (
	*tensor.Dense, []float64, []bool, []bool, environment.Info, error) {
	obs, rewards, terminateds, truncateds, info, err :=
		r.VectorEnv.Step(actions)
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}

	var stats []EpisodeStats
	for i := range rewards {
		r.returns[i] += rewards[i]
		r.lengths[i]++

		if terminateds[i] || truncateds[i] {
			stats = append(stats, EpisodeStats{
				Env:    i,
				Return: r.returns[i],
				Length: r.lengths[i],
			})
			r.returns[i] = 0
			r.lengths[i] = 0
		}
	}

	if stats != nil {
		if info == nil {
			info = environment.Info{}
		}
		info[Episode] = stats
	}

	return obs, rewards, terminateds, truncateds, info, nil
}
