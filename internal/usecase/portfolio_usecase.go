package usecase

import (
	"context"

	"portfolio-backend/internal/domain"
)

type portfolioUsecase struct {
	portfolio *domain.Portfolio
}

// NewPortfolioUsecase serves the given content, or the built-in content when nil
func NewPortfolioUsecase(p *domain.Portfolio) domain.PortfolioUsecase {
	if p == nil {
		p = DefaultPortfolio()
	}
	return &portfolioUsecase{portfolio: p}
}

func (u *portfolioUsecase) Portfolio(ctx context.Context) *domain.Portfolio {
	return u.portfolio
}

func (u *portfolioUsecase) FeaturedProjects(ctx context.Context) []domain.Project {
	var featured []domain.Project
	for _, p := range u.portfolio.Projects {
		if p.Featured {
			featured = append(featured, p)
		}
	}
	return featured
}

// DefaultPortfolio is the site's content
func DefaultPortfolio() *domain.Portfolio {
	return &domain.Portfolio{
		Profile: domain.Profile{
			Name:        "Jesse Rotimi",
			Initials:    "JR",
			Role:        "A Software Developer",
			Tagline:     "I focus on turning ideas into fast, scalable, and beautifully crafted digital experiences.",
			Headshot:    "/static/hero/headshot.png",
			ResumeURL:   "/static/Jesse_Rotimi_Resume.pdf",
			ResumeName:  "Jesse_Rotimi_Resume.pdf",
			ContactNote: "Have a project in mind or just want to say hello? Send me a message.",
		},
		NavLinks: []domain.NavLink{
			{Label: "Home", Anchor: "hero"},
			{Label: "Skills", Anchor: "skills"},
			{Label: "Projects", Anchor: "projects"},
			{Label: "Experience", Anchor: "journey"},
			{Label: "Contact", Anchor: "contact"},
		},
		SocialLinks: []domain.SocialLink{
			{Name: "GitHub", Icon: "github", URL: "https://github.com/jesse-rotimi7"},
			{Name: "LinkedIn", Icon: "linkedin", URL: "https://www.linkedin.com/in/jesse-rotimi-a30695248/"},
		},
		Skills: []domain.Skill{
			{Name: "JAVASCRIPT", Icon: "javascript", Color: "#F7DF1E"},
			{Name: "PYTHON", Icon: "python", Color: "#3776AB"},
			{Name: "TYPESCRIPT", Icon: "typescript", Color: "#3178C6"},
			{Name: "REACT JS", Icon: "react", Color: "#61DAFB"},
			{Name: "NEXT.JS", Icon: "nextdotjs", Color: "#000000"},
			{Name: "TAILWIND", Icon: "tailwindcss", Color: "#06B6D4"},
			{Name: "NODE JS", Icon: "nodedotjs", Color: "#339933"},
			{Name: "EXPRESS", Icon: "express", Color: "#ffffff"},
			{Name: "GITHUB", Icon: "github", Color: "#ffffff"},
			{Name: "MONGODB", Icon: "mongodb", Color: "#47A248"},
			{Name: "GIT", Icon: "git", Color: "#F05032"},
			{Name: "POSTGRESQL", Icon: "postgresql", Color: "#4169E1"},
		},
		Projects: []domain.Project{
			{
				Title:        "Chat Application",
				Description:  "Soro Chat — Real-time chat application with user authentication, direct messaging. Features Socket.io for instant messaging, avatar uploads, and online status indicators. Deployed on Vercel (frontend) and Render (backend) with MongoDB Atlas.",
				Image:        "/static/projects/chat.png",
				Technologies: []string{"Next.js", "TypeScript", "MongoDB", "Express", "Socket.io", "Cloudinary"},
				GithubURL:    "https://github.com/jesse-rotimi7/Soro-repo",
				LiveURL:      "https://soro-one.vercel.app/chat",
			},
			{
				Title:        "E-Commerce Platform",
				Description:  "A full-stack e-commerce solution with user authentication, shopping cart, order management, favorites, and product reviews. Features a modern UI with smooth animations, responsive design, and session-based guest checkout support.",
				Image:        "/static/projects/oja.png",
				Technologies: []string{"Next.js", "TypeScript", "MongoDB", "Tailwind"},
				GithubURL:    "https://github.com/jesse-rotimi7/oja",
				LiveURL:      "https://oja-ruddy.vercel.app/",
				Featured:     true,
			},
			{
				Title:        "ITScope Solutions Corporate Website",
				Description:  "A modern corporate website showcasing IT consulting services with an interactive product catalog, payment integration, and dynamic content sections. Built with responsive design and smooth animations.",
				Image:        "/static/projects/Its.png",
				Technologies: []string{"React", "TypeScript", "Tailwind CSS", "EmailJS"},
				LiveURL:      "https://www.itscopesolutions.com/",
				Featured:     true,
			},
		},
		Experiences: []domain.Experience{
			{
				Year:     "2025",
				Title:    "Frontend Developer",
				Company:  "Immibuddy",
				Location: "Canada",
				Period:   "May 2025 - Present",
				Responsibilities: []string{
					"Collaborated with backend developers to integrate APIs for core features (Messaging, Community Management, dynamic content feeds)",
					"Developed responsive front-ends using React and Tailwind CSS for a seamless user experience across devices",
					"Managed application state and data fetching with Redux Toolkit Query (RTK Query) for real-time data optimization",
				},
				Side: "right",
			},
			{
				Year:     "2024",
				Title:    "Frontend Developer Intern",
				Company:  "LexTech Ecosystem Limited",
				Location: "Lagos, Nigeria",
				Period:   "Nov 2024 - Sept 2025",
				Responsibilities: []string{
					"Built responsive React and Tailwind UI components based on LexTech's design system",
					"Developed clean form flows for e-Affidavit, Multi-Door Court, and NIC solutions",
					"Integrated frontend with backend APIs for legal-tech workflows",
				},
				Side: "left",
			},
			{
				Year:     "2023",
				Title:    "Frontend Developer Intern",
				Company:  "The Content Place",
				Location: "Lagos, Nigeria",
				Period:   "March 2023 - Sept 2023",
				Responsibilities: []string{
					"Spearheaded the successful launch of a new company website using full-stack development (HTML, CSS, JavaScript, Python Flask), collaborating with a supervisor",
					"Optimized mobile responsiveness of the company's React e-commerce site for selling artworks, enhancing user experience and performance",
				},
				Side: "right",
			},
		},
		Timeline: []domain.TimelineStep{
			{Label: "Plan", Icon: "📋"},
			{Label: "Design", Icon: "🎨"},
			{Label: "Develop", Icon: "💻"},
			{Label: "Test", Icon: "🧪"},
			{Label: "Deploy", Icon: "🚀"},
		},
	}
}
