package statusc

import "fmt"

type Status struct{ string }

var (
	Starting = Status{"starting"}
	Serving  = Status{"serving"}
)

func (s Status) String() string {
	return s.string
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.string), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	switch str := string(b); str {
	case Starting.string:
		*s = Starting
	case Serving.string:
		*s = Serving
	default:
		return fmt.Errorf("unknown status: %s", str)
	}
	return nil
}
