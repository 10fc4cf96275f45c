package application

// User-facing strings shared by the transports. The assistant speaks
// Ukrainian; the marker phrases in the system instruction below are the
// extraction micro-protocol and must not be reworded (see extract.go).

const WelcomeText = "Привіт! Я бот для замовлення їжі.\n" +
	"Можете попросити мене порадити страву, додати її до вашого замовлення, " +
	"виключити інгредієнти. Надішліть голосове або текстове повідомлення.\n" +
	"Скористайтесь /checkout для формування чеку."

// RecognitionApology is sent when a voice clip carried no recognizable speech.
const RecognitionApology = "Вибачте, не вдалося розпізнати ваш голос. Спробуйте ще раз."

// TurnFailureText is the generic answer when a turn fails hard.
const TurnFailureText = "Вибачте, сталася помилка. Спробуйте ще раз."

// EmptyOrderText answers /checkout on an empty order.
const EmptyOrderText = "Ваше замовлення порожнє. Додайте страви перед формуванням чеку."

const systemInstruction = "Ти - розумний голосовий асистент для замовлення їжі. " +
	"Коли користувач хоче щось замовити, ти повинен дати чітку інструкцію в одному з рядків відповіді. " +
	"Формат для додавання страви: 'Додати до замовлення: <назва страви>'. " +
	"Формат для виключення інгредієнта: 'Виключити інгредієнт: <назва інгредієнта>'. "

const (
	orderSummaryPrefix = "Поточне замовлення: "
	orderEmptySummary  = "Поточне замовлення порожнє."
)
