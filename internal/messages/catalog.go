package messages

// Style selects the ANSI treatment of a message's first line.
type Style int

const (
	Plain Style = iota
	Heading
	Error
	Success
)

// Message is a block of terminal output. Text is styled, Hint lines that
// follow it are always plain.
type Message struct {
	Style Style
	Text  string
	Hint  string
}

var (
	Welcome = Message{Style: Heading, Text: "Welcome to the ATM!"}
	Menu    = Message{Style: Heading, Text: "Please choose an option:", Hint: "1) Login\n2) Sign Up\n3) Exit"}
	Goodbye = Message{Style: Heading, Text: "Thank you for banking with us here at Bank Of Ray!", Hint: "See you next time!"}

	MenuInvalidChoice   = Message{Style: Error, Text: "ERROR: Invalid input. Please enter 1, 2, or 3."}
	ActionMenu          = Message{Style: Plain, Text: "What would you like to do?", Hint: "1) Check Balance\n2) Deposit Money\n3) Withdraw Money\n4) Exit"}
	ActionInvalidChoice = Message{Style: Error, Text: "ERROR: Invalid input. Please enter 1, 2, 3, or 4."}

	DepositPrompt  = Message{Style: Heading, Text: "How much money would you like to deposit?", Hint: "If you would like to return to the menu, type 'back'."}
	WithdrawPrompt = Message{Style: Heading, Text: "How much money would you like to withdraw?", Hint: "If you would like to return to the menu, type 'back'."}
	NoFunds        = Message{Style: Error, Text: "ERROR: You do not have any money in your account. You cannot withdraw anything!"}
	ExceedsBalance = Message{Style: Error, Text: "ERROR: You cannot withdraw more money than you have in your balance!"}
	NotPositive    = Message{Style: Error, Text: "ERROR: You must enter a positive amount!"}
	SubCent        = Message{Style: Error, Text: "ERROR: Amounts cannot have more than two decimal places!"}
	NotANumber     = Message{Style: Error, Text: "ERROR: You must enter a number! Please make sure you are not typing any letters or special characters."}

	LoginUsernamePrompt = Message{Style: Heading, Text: "Enter your username:", Hint: "If you would like to return to the menu, please type 0."}
	LoginPasswordPrompt = Message{Style: Heading, Text: "Enter your password:", Hint: "If you would like to return to the menu, please type 0."}
	UsernameNotFound    = Message{Style: Error, Text: "ERROR: That username does not exist!"}
	LoginSuccess        = Message{Style: Success, Text: "Login successful!"}
	InvalidPassword     = Message{Style: Error, Text: "ERROR: Invalid password!"}
	LoginLocked         = Message{Style: Error, Text: "ERROR: Too many failed login attempts for this username.", Hint: "Please try again later."}

	SignupNotice         = Message{Style: Heading, Text: "NOTICE: If at any point in this process you would like to\nreturn to the menu, please type 0."}
	FirstNamePrompt      = Message{Style: Heading, Text: "Enter your first name:", Hint: "Your first name can only contain letters. Do not\nuse any numbers or special characters."}
	InvalidFirstName     = Message{Style: Error, Text: "ERROR: Invalid first name!"}
	LastNamePrompt       = Message{Style: Heading, Text: "Enter your last name:", Hint: "Your last name can only contain letters. Do not\nuse any numbers or special characters."}
	InvalidLastName      = Message{Style: Error, Text: "ERROR: Invalid last name!"}
	SignupUsernamePrompt = Message{Style: Heading, Text: "Enter your username:", Hint: "Your username must be within 3 - 15 characters. Please note\nthat usernames are case sensitive!"}
	UsernameTaken        = Message{Style: Error, Text: "ERROR: This username is already being used! If this is you,\nplease type 0 to return to menu and choose the Login option. If this\nis not you, please think of a more unique username to use!"}
	InvalidUsername      = Message{Style: Error, Text: "ERROR: Invalid username!"}
	SignupPasswordPrompt = Message{Style: Heading, Text: "Enter your password:", Hint: "It must be between 5 - 15 characters, and contain at least one letter and one number."}
	ConfirmPassword      = Message{Style: Heading, Text: "Confirm your password:", Hint: "It must match the password you previously chose!\nIf you suspect you made a mistake, type 'back' to\ngo back and rechoose a password"}
	PasswordsDontMatch   = Message{Style: Error, Text: "ERROR: Your passwords do not match! Try again!"}
	SignupSuccess        = Message{Style: Success, Text: "Signup successful! You can now log in."}
	SignupFailure        = Message{Style: Error, Text: "ERROR: Signup failed. Please try again."}

	ServiceUnavailable = Message{Style: Error, Text: "ERROR: Something went wrong on our end. Please try again later."}
)
