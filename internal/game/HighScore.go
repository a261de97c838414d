package game

import (
	"sort"
	"sync"
	"time"
)

// HighScoreService keeps the results of the games played in this process.
// Nothing is written to disk.
type HighScoreService struct {
	mu     sync.Mutex
	scores []Score
	nextID int
	now    func() time.Time
}

type Score struct {
	ID          int
	PlayerName  string
	Points      int
	SnakeLength int
	CreatedAt   time.Time
}

func NewHighScoreService() *HighScoreService {
	return &HighScoreService{now: time.Now}
}

func (serviceImpl *HighScoreService) SavePlayersHighScore(playerName string, points int, snakeLength int) Score {
	serviceImpl.mu.Lock()
	defer serviceImpl.mu.Unlock()

	serviceImpl.nextID++
	score := Score{
		ID:          serviceImpl.nextID,
		PlayerName:  playerName,
		Points:      points,
		SnakeLength: snakeLength,
		CreatedAt:   serviceImpl.now(),
	}
	serviceImpl.scores = append(serviceImpl.scores, score)
	return score
}

// GetHighScores returns a page of scores, best first. Ties go to the
// earlier game.
func (serviceImpl *HighScoreService) GetHighScores(limit, offset int) []Score {
	serviceImpl.mu.Lock()
	sorted := make([]Score, len(serviceImpl.scores))
	copy(sorted, serviceImpl.scores)
	serviceImpl.mu.Unlock()

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Points != sorted[j].Points {
			return sorted[i].Points > sorted[j].Points
		}
		return sorted[i].ID < sorted[j].ID
	})

	if offset < 0 || offset >= len(sorted) || limit <= 0 {
		return nil
	}
	end := min(len(sorted), offset+limit)
	return sorted[offset:end]
}

func (serviceImpl *HighScoreService) GetTotalScoreCount() int {
	serviceImpl.mu.Lock()
	defer serviceImpl.mu.Unlock()
	return len(serviceImpl.scores)
}
