package heuristic

// skillVocab is the fixed reference vocabulary matched against resume text.
// Lowercase; multi-word phrases are matched as whole words in order.
var skillVocab = []string{
	"python", "java", "javascript", "typescript", "golang", "go", "rust",
	"c++", "c#", "ruby", "php", "swift", "kotlin", "scala", "r",
	"sql", "nosql", "postgresql", "mysql", "mongodb", "redis", "elasticsearch",
	"html", "css", "react", "angular", "vue", "svelte", "node", "django",
	"flask", "spring", "rails", "laravel", ".net", "graphql", "rest",
	"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "ansible",
	"jenkins", "git", "ci/cd", "linux", "bash",
	"machine learning", "deep learning", "data analysis", "data science",
	"nlp", "tensorflow", "pytorch", "pandas", "numpy", "spark", "hadoop",
	"tableau", "power bi", "excel",
	"agile", "scrum", "kanban", "jira",
	"project management", "product management", "leadership", "communication",
	"marketing", "sales", "seo", "customer service", "accounting", "finance",
}

// Section heading keyword sets.
var (
	summaryKeys    = []string{"summary", "objective", "profile", "about"}
	skillsKeys     = []string{"skills", "technologies", "competencies"}
	experienceKeys = []string{"experience", "employment", "work history"}
	educationKeys  = []string{"education", "academic background", "qualifications"}
)

// roleKeys marks lines that plausibly name a position title.
var roleKeys = []string{
	"engineer", "developer", "manager", "analyst", "consultant", "director",
	"designer", "architect", "intern", "lead", "specialist", "coordinator",
	"administrator", "scientist", "officer", "technician", "accountant",
}

// degreeKeys marks lines that plausibly name a qualification.
var degreeKeys = []string{
	"bachelor", "master", "phd", "ph.d", "doctorate", "mba",
	"b.s", "m.s", "b.a", "m.a", "bsc", "msc", "associate", "diploma",
	"certificate", "degree",
}
