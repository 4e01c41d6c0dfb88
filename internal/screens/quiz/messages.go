package quiz

import "github.com/abhisek/quizdeck/internal/bank"

// bankLoadedMsg is sent when the subject's bank has been read.
type bankLoadedMsg struct {
	Bank *bank.Bank
	Err  error
}

// explanationMsg carries an explanation back to the screen. Key is the
// shuffle key the request was made under; replies for an older key are
// dropped.
type explanationMsg struct {
	QuestionID int
	Key        string
	Text       string
	Err        error
}
