package workflow

// State шаг процесса бронирования
type State string

const (
	StateHostIntro      State = "host_intro"
	StateSelectDate     State = "select_date"
	StateSelectTime     State = "select_time"
	StateSelectServices State = "select_services"
	StatePayment        State = "payment"
	StateSuccess        State = "success"
	StateClosed         State = "closed"
)

// order порядок шагов; closed в него не входит
var order = []State{
	StateHostIntro,
	StateSelectDate,
	StateSelectTime,
	StateSelectServices,
	StatePayment,
	StateSuccess,
}

// String возвращает строковое представление
func (s State) String() string {
	return string(s)
}

// IsTerminal возвращает true для success и closed
func (s State) IsTerminal() bool {
	return s == StateSuccess || s == StateClosed
}

func (s State) index() int {
	for i, st := range order {
		if st == s {
			return i
		}
	}
	return -1
}

// next следующий шаг по порядку
func (s State) next() (State, bool) {
	i := s.index()
	if i < 0 || i+1 >= len(order) {
		return "", false
	}
	return order[i+1], true
}

// prev предыдущий шаг по порядку
func (s State) prev() (State, bool) {
	i := s.index()
	if i <= 0 {
		return "", false
	}
	return order[i-1], true
}
