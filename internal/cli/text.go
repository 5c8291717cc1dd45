package cli

import "github.com/enescakir/emoji"

// Terminal texts.
var (
	TextGreeting = emoji.VideoGame.String() + " REddle: find the hidden 5-letter word with regular expressions.\n" +
		"Type :help for the commands.\n"

	TextHelp = emoji.Bookmark.String() + " How to play\n" +
		"  Enter a pattern and you will be told whether it matches the word.\n" +
		"  To answer, type the word itself.\n\n" +
		"  :new     start a new game\n" +
		"  :giveup  reveal the word\n" +
		"  :help    show this help\n" +
		"  :quit    exit\n"

	TextNotInProgress = emoji.Robot.String() + " No game in progress. Type :new to start one."
	TextEmptyAnswer   = emoji.CrossMark.String() + " Please enter an answer."
	TextBadPattern    = emoji.CrossMark.String() + " That pattern is not valid."
	TextBye           = "Bye!"

	TextStarted = emoji.VideoGame.String() + " Game started."
	TextCorrect = emoji.Trophy.String() + " Correct!"
	TextGaveUp  = emoji.ChequeredFlag.String() + " Challenge failed. The answer was %q."
	TextMatched = emoji.ThumbsUp.String() + " true"
	TextMissed  = emoji.ThumbsDown.String() + " false"
)
