package main

import "strings"

type Project struct {
	Name    string
	Summary string
	Stack   []string
}

type Testimonial struct {
	Quote  string
	Author string
	Role   string
}

// PageCopy is every piece of prose on the home page in one language
type PageCopy struct {
	Lang          string
	Greeting      string
	AboutHeading  string
	AboutMe       string
	ProjectsTitle string
	Projects      []Project
	VoicesTitle   string
	Testimonials  []Testimonial
	TerminalHint  string
	SwitchLabel   string
	SwitchLang    string
}

var english = PageCopy{
	Lang:         "en",
	Greeting:     "Hi, I'm Zach",
	AboutHeading: "About me",
	AboutMe: `I love building software that's both useful and fun, and I'm always curious about how things work behind the scenes.
Most of my projects start with a simple idea and turn into a chance to learn something new, whether it's exploring a
different language, experimenting with tools, or solving tricky problems.
When I'm not coding, you'll usually find me training Muay Thai, shooting pool with friends,
or chasing down a new challenge outside the screen.`,
	ProjectsTitle: "Projects",
	Projects: []Project{
		{
			Name:    "Terminal mail",
			Summary: "A terminal-based email client with fuzzy finding, built on the Charmbracelet TUI framework and go-imap.",
			Stack:   []string{"Go", "Bubble Tea", "IMAP"},
		},
		{
			Name:    "Terminal music",
			Summary: "A terminal music player that streams YouTube Music through yt-dlp and mpv from an elegant TUI.",
			Stack:   []string{"Go", "yt-dlp", "mpv"},
		},
		{
			Name:    "Game recommender",
			Summary: "A recommendation web app using TF-IDF vectors and cosine similarity, with interactive charts and live filtering by reviews and ratings.",
			Stack:   []string{"Python", "scikit-learn", "Plotly"},
		},
		{
			Name:    "This site",
			Summary: "A responsive portfolio served by Go and Gin, with htmx fragments, a server-sent terminal demo and Tailwind styling.",
			Stack:   []string{"Go", "Gin", "htmx", "SQLite"},
		},
	},
	VoicesTitle: "Kind words",
	Testimonials: []Testimonial{
		{Quote: "Zach turned a chaotic reset week into a schedule everyone could follow.", Author: "Dana R.", Role: "Store team lead"},
		{Quote: "Calm under pressure and always the first to fix the AV when it broke mid-event.", Author: "Jason M.", Role: "Owner, Jasons Catered Events"},
		{Quote: "Writes code the way he trains: steady, curious and hard to stop.", Author: "Priya K.", Role: "Study group partner"},
	},
	TerminalHint: "A few of the things I type every day",
	SwitchLabel:  "Français",
	SwitchLang:   "fr",
}

var french = PageCopy{
	Lang:         "fr",
	Greeting:     "Salut, moi c'est Zach",
	AboutHeading: "À propos",
	AboutMe: `J'aime créer des logiciels à la fois utiles et amusants, et je suis toujours curieux de savoir comment les choses fonctionnent en coulisses.
La plupart de mes projets partent d'une idée simple et deviennent l'occasion d'apprendre quelque chose de nouveau : un autre
langage, de nouveaux outils ou un problème épineux.
Quand je ne code pas, je m'entraîne au Muay Thai, je joue au billard avec des amis,
ou je cherche un nouveau défi loin de l'écran.`,
	ProjectsTitle: "Projets",
	Projects: []Project{
		{
			Name:    "Mail au terminal",
			Summary: "Un client mail en terminal avec recherche floue, construit avec le framework TUI de Charmbracelet et go-imap.",
			Stack:   []string{"Go", "Bubble Tea", "IMAP"},
		},
		{
			Name:    "Musique au terminal",
			Summary: "Un lecteur de musique en terminal qui diffuse YouTube Music via yt-dlp et mpv.",
			Stack:   []string{"Go", "yt-dlp", "mpv"},
		},
		{
			Name:    "Recommandation de jeux",
			Summary: "Une application de recommandation basée sur TF-IDF et la similarité cosinus, avec graphiques interactifs et filtres en direct.",
			Stack:   []string{"Python", "scikit-learn", "Plotly"},
		},
		{
			Name:    "Ce site",
			Summary: "Un portfolio servi par Go et Gin, avec des fragments htmx, une démo de terminal en server-sent events et Tailwind.",
			Stack:   []string{"Go", "Gin", "htmx", "SQLite"},
		},
	},
	VoicesTitle: "Ils en parlent",
	Testimonials: []Testimonial{
		{Quote: "Zach a transformé une semaine de réaménagement chaotique en un planning clair pour toute l'équipe.", Author: "Dana R.", Role: "Responsable d'équipe"},
		{Quote: "Calme sous pression, toujours le premier à réparer la sono en plein événement.", Author: "Jason M.", Role: "Gérant, Jasons Catered Events"},
		{Quote: "Il code comme il s'entraîne : régulier, curieux et difficile à arrêter.", Author: "Priya K.", Role: "Partenaire de révision"},
	},
	TerminalHint: "Quelques commandes que je tape tous les jours",
	SwitchLabel:  "English",
	SwitchLang:   "en",
}

// copyFor picks the page copy for a ?lang= value, English by default
func copyFor(lang string) PageCopy {
	if strings.HasPrefix(strings.ToLower(lang), "fr") {
		return french
	}
	return english
}

// Entry is one job or credential on the work and education panels
type Entry struct {
	Title   string
	Org     string
	Start   string
	End     string
	Logo    string
	Bullets []string
}

var workHistory = []Entry{
	{
		Title: "Presentation Expert",
		Org:   "Target",
		Start: "Aug 2023",
		End:   "Present",
		Logo:  "/images/TargetLogo.jpg",
		Bullets: []string{
			"Executed over 300 merchandising transitions on tight timelines by organizing team workflows and adapting quickly to changing priorities",
			"Boosted operational efficiency by managing backroom inventory processes and streamlining communication between floor and logistics teams",
			"Enhanced pricing and signage accuracy across departments by standardizing daily checks and collaborating cross-functionally",
		},
	},
	{
		Title: "Manager",
		Org:   "Jasons Catered Events",
		Start: "Aug 2016",
		End:   "Present",
		Logo:  "/images/jasonsCateringLogo.png",
		Bullets: []string{
			"Improved client satisfaction by coordinating customized menus and ensuring all dietary requirements were accurately met",
			"Supported event technology by troubleshooting AV equipment and managing digital order tracking, reducing technical delays",
			"Maintained supply inventory and coordinated timely delivery between venues, minimizing downtime",
		},
	},
}

var education = []Entry{
	{
		Title: "Bachelor of Computer Science",
		Org:   "Western Governors University",
		Start: "Sept 2019",
		End:   "May 2023",
		Logo:  "/images/WGU-logo.png",
		Bullets: []string{
			"Graduated Magna Cum Laude with 3.8 GPA",
			"Relevant coursework: Data Structures, Algorithms, Web Development",
			"Senior project: Machine Learning recommendation system",
		},
	},
	{
		Title: "Project Management",
		Org:   "Comptia",
		Start: "July 2022",
		End:   "Present",
		Logo:  "/images/comptiaCert.png",
		Bullets: []string{
			"Certified in agile project management methodology",
			"Verification code: SRRRPGBSWBRQCCDJ",
		},
	},
}
