package bot

const msgWelcome = "\U0001F44B Welcome to the Cucumber + Capybara Quiz Bot!\n\n" +
	"Use /quiz to get a new question about Cucumber and Capybara testing.\n" +
	"Each question has up to four options, and you'll get an explanation for the correct answer."

const msgHelp = `Use /quiz to get a quiz question.`

const msgGenerationFailed = `Sorry, failed to generate quiz question. Please try again later.`

const msgUnparsable = `Sorry, could not parse question correctly. Please try again.`

const msgSendFailed = `Sorry, failed to send the quiz question. Please try again.`

const msgBusy = `I'm busy generating other quizzes, please try again in a moment.`

const defaultUserName = "someone"
