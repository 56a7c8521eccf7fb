package main

type Project struct {
	Title       string
	Description string
	Image       string
	Tech        []string
	GitHub      string
	Live        string
	Status      string
	Highlight   string
}

type Skill struct {
	Name        string
	Description string
}

type Achievement struct {
	Title string
	Desc  string
}

type SocialLink struct {
	Label string
	Href  string
}

var (
	Brand = "Bintang AI"

	Tagline = `Building the future with Artificial Intelligence. Passionate about creating intelligent
	systems that matter for Indonesia and beyond.`

	AboutMe = `I design and ship machine learning systems end to end: from collecting and cleaning data,
	through model training and evaluation, to the APIs and dashboards that put those models in front of people.
	Most of my work sits where computer vision, natural language processing and web development meet.`

	Projects = []Project{
		{
			Title:       "Neural Vision System",
			Description: "Advanced computer vision platform for real-time object detection and classification. Built with deep learning models achieving high accuracy on custom datasets.",
			Image:       "https://images.unsplash.com/photo-1555949963-aa79dcee981c?w=400&h=300&fit=crop",
			Tech:        []string{"Python", "PyTorch", "OpenCV", "YOLO", "Flask", "Docker"},
			GitHub:      "https://github.com",
			Live:        "https://demo.com",
			Status:      "production",
			Highlight:   "Computer Vision",
		},
		{
			Title:       "Indonesian Sentiment Analyzer",
			Description: "Natural language processing model specifically trained for Indonesian text sentiment analysis using transformer architecture and BERT models.",
			Image:       "https://images.unsplash.com/photo-1516321318423-f06f85e504b3?w=400&h=300&fit=crop",
			Tech:        []string{"Python", "Transformers", "BERT", "FastAPI", "TensorFlow", "Streamlit"},
			GitHub:      "https://github.com",
			Live:        "https://demo.com",
			Status:      "beta",
			Highlight:   "NLP & AI",
		},
		{
			Title:       "Smart Analytics Dashboard",
			Description: "Machine learning pipeline for predictive analytics with real-time data visualization and business intelligence insights for decision making.",
			Image:       "https://images.unsplash.com/photo-1551288049-bebda4e38f71?w=400&h=300&fit=crop",
			Tech:        []string{"Python", "Scikit-learn", "React", "D3.js", "PostgreSQL", "Redis"},
			GitHub:      "https://github.com",
			Live:        "https://demo.com",
			Status:      "development",
			Highlight:   "Data Science",
		},
	}

	TechStack = map[string][]string{
		"AI & Machine Learning": {"Python", "TensorFlow", "PyTorch", "Scikit-learn", "Keras", "OpenCV", "Pandas", "NumPy"},
		"Web Development":       {"React", "Next.js", "Node.js", "Express", "FastAPI", "Flask", "TypeScript", "JavaScript"},
		"Database & Cloud":      {"PostgreSQL", "MongoDB", "Redis", "AWS", "Docker", "Git", "Linux", "Firebase"},
		"Data & Analytics":      {"Jupyter", "Matplotlib", "Seaborn", "Plotly", "D3.js", "Tableau", "Power BI", "Excel"},
	}

	HardSkills = []Skill{
		{"Machine Learning", "Deep Learning, Neural Networks, Model Training"},
		{"Data Science", "Statistical Analysis, Data Visualization, Insights"},
		{"Computer Vision", "Image Processing, Object Detection, CNN"},
		{"Natural Language Processing", "Text Analysis, Transformers, BERT"},
		{"Web Development", "Full-Stack Development, APIs, Responsive Design"},
		{"Database Management", "SQL, NoSQL, Data Modeling, Optimization"},
	}

	SoftSkills = []Skill{
		{"Problem Solving", "Analytical thinking and creative solutions"},
		{"Team Collaboration", "Effective communication and teamwork"},
		{"Project Management", "Planning, execution, and delivery"},
		{"Continuous Learning", "Staying updated with latest technologies"},
		{"Communication", "Technical writing and presentation skills"},
		{"Leadership", "Mentoring and guiding team members"},
	}

	Achievements = []Achievement{
		{"AI Research Publication", "Published in IEEE Conference on AI"},
		{"Kaggle Competition Expert", "Top 5% in multiple ML competitions"},
		{"Google AI Certification", "TensorFlow Developer Certified"},
	}

	SocialLinks = []SocialLink{
		{"GitHub", "https://github.com/kireistar"},
		{"LinkedIn", "https://linkedin.com/"},
		{"Email", "mailto:hello@bintang.ai"},
	}
)
