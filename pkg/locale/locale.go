package locale

import (
	"golang.org/x/text/language"
)

// Language is the two-valued locale switch for the adventure.
// Generated narrative text is never retranslated; the language only
// selects template text and the narrator's output language.
type Language string

const (
	English Language = "en"
	Thai    Language = "th"
)

// Parse normalizes a language string, defaulting to Thai like the
// original front-end.
func Parse(s string) Language {
	if s == string(English) {
		return English
	}
	return Thai
}

// Tag returns the BCP 47 tag for collation and casing.
func (l Language) Tag() language.Tag {
	if l == Thai {
		return language.Thai
	}
	return language.English
}

// Text holds all template and system copy for one language.
type Text struct {
	MainTitle      string
	MainSubtitle   string
	WelcomeMessage string
	StartButton    string
	ContinueButton string

	NamePrompt      string
	GenderPrompt    string
	ArchetypePrompt string

	QuestTitle     string
	InventoryTitle string
	StatsTitle     string
	SkillsTitle    string
	LoreTitle      string
	CompanionTitle string
	CraftingTitle  string
	EmptyInventory string
	UnseenWorld    string

	LoadingWorld    string
	LoadingWeaving  string
	LoadingPainting string
	LoadingCrafting string

	ErrorTitle       string
	ErrQuota         string
	ErrGeneric       string
	ErrImage         string
	CraftingFallback string

	SavedMessage  string
	LoreDiscovered string

	InitialQuestTitle      string
	InitialQuestObjectives []string
	InitialInventory       []string
	InitialChoice          string
	InitialStoryContext    string
}

var texts = map[Language]Text{
	Thai: {
		MainTitle:      "สร้างตำนานของคุณ",
		MainSubtitle:   "เรื่องราวที่เปลี่ยนแปลงไปไม่สิ้นสุด ที่ซึ่งตัวเลือกของคุณกำหนดโลก ไม่มีสองการผจญภัยใดที่เหมือนกัน",
		WelcomeMessage: "เรื่องราวของคุณกำลังรออยู่ กดปุ่มเพื่อเริ่มต้นการเดินทางผ่านโลกที่สร้างจากจินตนาการ",
		StartButton:    "เริ่มต้นการผจญภัย",
		ContinueButton: "เล่นต่อจากที่บันทึกไว้",

		NamePrompt:      "ชื่อตัวละครของคุณ",
		GenderPrompt:    "เพศของตัวละคร",
		ArchetypePrompt: "เลือกต้นแบบตัวละคร",

		QuestTitle:     "เควสปัจจุบัน",
		InventoryTitle: "ช่องเก็บของ",
		StatsTitle:     "ค่าสถานะ",
		SkillsTitle:    "ทักษะ",
		LoreTitle:      "ตำนาน",
		CompanionTitle: "เพื่อนร่วมทาง",
		CraftingTitle:  "คราฟต์ไอเทม",
		EmptyInventory: "ในกระเป๋าของคุณว่างเปล่า",
		UnseenWorld:    "โลกนี้ยังไม่เคยถูกพบเห็น...",

		LoadingWorld:    "กำลังอัญเชิญโลกใบใหม่...",
		LoadingWeaving:  "เส้นด้ายแห่งโชคชะตากำลังถักทอ...",
		LoadingPainting: "กำลังวาดฉากด้วยแสงและเงา...",
		LoadingCrafting: "พลังเวทมนตร์กำลังหลอมรวมไอเทม...",

		ErrorTitle:       "เกิดข้อผิดพลาด",
		ErrQuota:         "เวทมนตร์ถูกเรียกใช้มากเกินไป โปรดรอสักครู่แล้วลองอีกครั้ง",
		ErrGeneric:       "ไม่สามารถสร้างเรื่องราวตอนต่อไปได้ เวทมนตร์โบราณกำลังแปรปรวน",
		ErrImage:         "ไม่สามารถวาดภาพฉากนี้ได้ แต่การเดินทางยังดำเนินต่อไป",
		CraftingFallback: "พลังงานเวทมนตร์เกิดการย้อนกลับอย่างรุนแรง ไอเทมของคุณสลายไปในประกายไฟ",

		SavedMessage:   "บันทึกการผจญภัยแล้ว",
		LoreDiscovered: "ค้นพบตำนานใหม่: %s",

		InitialQuestTitle:      "ตามหาซากปรักหักพังเสียงกระซิบ",
		InitialQuestObjectives: []string{"เดินตามเส้นทางที่ปกคลุมด้วยหมอก", "ไปให้ถึงซากปรักหักพังเสียงกระซิบ"},
		InitialInventory:       []string{"เสื้อคลุมนักเดินทาง", "แอปเปิ้ลครึ่งลูก"},
		InitialChoice:          "เริ่มต้นการผจญภัย",
		InitialStoryContext:    "คุณตื่นขึ้นมาพร้อมกับหอบหายใจ ความรู้สึกของเป้าหมายดังกระหึ่มในเส้นเลือดของคุณ แต่เส้นทางข้างหน้าถูกปกคลุมไปด้วยหมอก",
	},
	English: {
		MainTitle:      "Forge Your Legend",
		MainSubtitle:   "An endlessly evolving story where your choices shape the world. No two adventures are the same.",
		WelcomeMessage: "Your story awaits. Press the button to begin your journey through a world crafted by imagination.",
		StartButton:    "Begin Your Adventure",
		ContinueButton: "Continue Saved Adventure",

		NamePrompt:      "Your character's name",
		GenderPrompt:    "Your character's gender",
		ArchetypePrompt: "Choose an archetype",

		QuestTitle:     "Current Quest",
		InventoryTitle: "Inventory",
		StatsTitle:     "Stats",
		SkillsTitle:    "Skills",
		LoreTitle:      "Lorebook",
		CompanionTitle: "Companion",
		CraftingTitle:  "Crafting",
		EmptyInventory: "Your pockets are empty.",
		UnseenWorld:    "The world is yet to be seen...",

		LoadingWorld:    "Summoning a new world...",
		LoadingWeaving:  "The threads of fate are weaving...",
		LoadingPainting: "Painting the scene with light and shadow...",
		LoadingCrafting: "Arcane forces are fusing your items...",

		ErrorTitle:       "An Error Occurred",
		ErrQuota:         "The arcane channels are exhausted. Wait a moment and try again.",
		ErrGeneric:       "Failed to generate the next part of the story. The ancient magic is unstable.",
		ErrImage:         "The scene could not be painted, but your journey continues.",
		CraftingFallback: "A surge of unpredictable magic backfired, consuming your items in a flash of light.",

		SavedMessage:   "Adventure saved.",
		LoreDiscovered: "New lore discovered: %s",

		InitialQuestTitle:      "Find the Whispering Ruins.",
		InitialQuestObjectives: []string{"Follow the mist-shrouded path", "Reach the Whispering Ruins"},
		InitialInventory:       []string{"Traveler's Cloak", "A half-eaten apple"},
		InitialChoice:          "Begin the adventure",
		InitialStoryContext:    "You awaken with a gasp. A sense of purpose hums in your veins, but the path ahead is shrouded in mist.",
	},
}

// TextFor returns the copy table for a language.
func TextFor(lang Language) Text {
	if t, ok := texts[lang]; ok {
		return t
	}
	return texts[Thai]
}
