package games

type colorItem struct {
	Name  string `json:"name"`
	Class string `json:"class"`
}

var colors = []colorItem{
	{"Red", "bg-game-red"},
	{"Orange", "bg-game-orange"},
	{"Yellow", "bg-game-yellow"},
	{"Green", "bg-game-green"},
	{"Blue", "bg-game-blue"},
	{"Purple", "bg-game-purple"},
}

var shapes = []string{"circle", "square", "triangle", "star"}

type animal struct {
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Sound       string `json:"sound"`
	DisplayName string `json:"displayName"`
}

var animals = []animal{
	{"cat", "🐱", "Meow!", "Cat"},
	{"dog", "🐕", "Woof!", "Dog"},
	{"cow", "🐄", "Moo!", "Cow"},
	{"lion", "🦁", "Roar!", "Lion"},
}

var critters = []string{"🐝", "🦋", "🐞", "🐛", "🐌", "🦗", "🐜", "🐢"}

type shadowItem struct {
	Emoji string `json:"emoji"`
	Name  string `json:"name"`
}

var shadowItems = []shadowItem{
	{"🚗", "Car"}, {"🏠", "House"}, {"🌳", "Tree"}, {"⭐", "Star"},
	{"🎈", "Balloon"}, {"🦋", "Butterfly"}, {"🐟", "Fish"}, {"🍎", "Apple"},
	{"☂️", "Umbrella"}, {"🎸", "Guitar"}, {"✈️", "Airplane"}, {"🚀", "Rocket"},
}

type pattern struct {
	sequence []string
	answer   string
	options  []string
}

var patterns = []pattern{
	{[]string{"🔴", "🔵", "🔴", "🔵"}, "🔴", []string{"🔴", "🔵", "🟢", "🟡"}},
	{[]string{"🌟", "🌙", "🌟", "🌙"}, "🌟", []string{"🌟", "🌙", "☀️", "⭐"}},
	{[]string{"🍎", "🍎", "🍊", "🍎", "🍎"}, "🍊", []string{"🍎", "🍊", "🍋", "🍇"}},
	{[]string{"⬆️", "➡️", "⬇️", "⬅️"}, "⬆️", []string{"⬆️", "➡️", "⬇️", "⬅️"}},
	{[]string{"1️⃣", "2️⃣", "3️⃣", "4️⃣"}, "5️⃣", []string{"5️⃣", "6️⃣", "1️⃣", "3️⃣"}},
	{[]string{"🐶", "🐱", "🐶", "🐱"}, "🐶", []string{"🐶", "🐱", "🐭", "🐹"}},
	{[]string{"❤️", "💛", "💚", "💙"}, "💜", []string{"💜", "❤️", "🖤", "💛"}},
	{[]string{"🌸", "🌸", "🌺", "🌸", "🌸"}, "🌺", []string{"🌸", "🌺", "🌻", "🌷"}},
}

type sortingChallenge struct {
	instruction string
	correct     []string
}

var sortingChallenges = []sortingChallenge{
	{"Sort by SIZE (smallest to biggest)", []string{"🐜", "🐈", "🐘"}},
	{"Sort by SIZE (smallest to biggest)", []string{"🌱", "🌿", "🌳"}},
	{"Sort from COLD to HOT", []string{"🧊", "💧", "☀️"}},
	{"Sort from SLOW to FAST", []string{"🐢", "🐇", "🚗"}},
	{"Sort by AGE (baby to adult)", []string{"👶", "👦", "👨"}},
	{"Sort from QUIET to LOUD", []string{"🐁", "🐶", "🦁"}},
	{"Sort from LIGHT to HEAVY", []string{"🪶", "📚", "🪨"}},
	{"Sort meal time (morning to night)", []string{"🌅", "☀️", "🌙"}},
}

type weather struct {
	emoji string
	name  string
	items []string
	wrong []string
}

var weatherData = []weather{
	{"☀️", "Sunny", []string{"🕶️", "👒", "🧴"}, []string{"☂️", "🧤", "🧣"}},
	{"🌧️", "Rainy", []string{"☂️", "🥾", "🌂"}, []string{"🕶️", "👙", "🩴"}},
	{"❄️", "Snowy", []string{"🧤", "🧣", "🧥"}, []string{"👙", "🩳", "🕶️"}},
	{"🌬️", "Windy", []string{"🧥", "🧢", "🪁"}, []string{"👙", "🩴", "🧴"}},
	{"🌈", "Rainbow", []string{"📷", "🎨", "🖼️"}, []string{"☂️", "🧤", "❄️"}},
}

type habitat struct {
	Name    string `json:"name"`
	Emoji   string `json:"emoji"`
	animals []string
}

var habitats = []habitat{
	{"Ocean", "🌊", []string{"🐟", "🐙", "🦈", "🐬", "🦀", "🐳"}},
	{"Forest", "🌲", []string{"🦊", "🐿️", "🦉", "🐻", "🦌", "🐺"}},
	{"Farm", "🏠", []string{"🐄", "🐔", "🐷", "🐴", "🐑", "🐐"}},
	{"Safari", "🦁", []string{"🦁", "🦓", "🐘", "🦒", "🦏", "🐆"}},
}

type scene struct {
	Emoji string `json:"emoji"`
	Text  string `json:"text"`
}

type story struct {
	title  string
	scenes []scene
}

var stories = []story{
	{"The Hungry Cat", []scene{{"🐱", "A cat was hungry"}, {"🥫", "It found some food"}, {"😋", "The cat ate happily"}, {"😴", "Then it took a nap"}}},
	{"Planting a Flower", []scene{{"🌱", "Plant a tiny seed"}, {"💧", "Water it every day"}, {"☀️", "Give it sunshine"}, {"🌸", "Watch it bloom!"}}},
	{"Making a Sandwich", []scene{{"🍞", "Get two slices of bread"}, {"🧈", "Spread some butter"}, {"🧀", "Add cheese and toppings"}, {"🥪", "Enjoy your sandwich!"}}},
	{"Going to Bed", []scene{{"🌙", "Night time comes"}, {"🛁", "Take a bath"}, {"📖", "Read a bedtime story"}, {"😴", "Fall asleep peacefully"}}},
	{"Building a Snowman", []scene{{"❄️", "It starts to snow"}, {"⛄", "Roll up some snowballs"}, {"🥕", "Add a carrot nose"}, {"🎩", "Put on a hat!"}}},
}

type word struct {
	word  string
	emoji string
	hint  string
}

var words = []word{
	{"DOG", "🐶", "A pet that barks"},
	{"CAT", "🐱", "A pet that meows"},
	{"SUN", "☀️", "It shines in the sky"},
	{"FISH", "🐟", "It lives in water"},
	{"BIRD", "🐦", "It can fly"},
	{"STAR", "⭐", "It twinkles at night"},
	{"TREE", "🌳", "It has leaves"},
	{"CAKE", "🎂", "A birthday treat"},
	{"FROG", "🐸", "It says ribbit"},
	{"BEAR", "🐻", "A big furry animal"},
}
