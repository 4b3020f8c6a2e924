package game

// scriptedA always plays the same action and records what it observed.
type scriptedA struct {
	action    Action
	cards     []Card
	rewards   []Reward
	opponents []Action
	log       *[]string
}

func (s *scriptedA) Decide(card Card) Action {
	s.cards = append(s.cards, card)
	return s.action
}

func (s *scriptedA) Observe(reward Reward, opponent Action) {
	s.rewards = append(s.rewards, reward)
	s.opponents = append(s.opponents, opponent)
	if s.log != nil {
		*s.log = append(*s.log, "a")
	}
}

type scriptedB struct {
	action  Action
	hints   []Action
	rewards []Reward
	log     *[]string
}

func (s *scriptedB) Decide(opponent Action) Action {
	s.hints = append(s.hints, opponent)
	return s.action
}

func (s *scriptedB) Observe(reward Reward) {
	s.rewards = append(s.rewards, reward)
	if s.log != nil {
		*s.log = append(*s.log, "b")
	}
}

type scriptedSource struct {
	ints   []int
	floats []float64
}

func (s *scriptedSource) IntN(n int) int {
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *scriptedSource) Float64() float64 {
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}
