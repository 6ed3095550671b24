package dashboard

// Static narrative copy. Markup is trusted and rendered as is.

const overviewContext = `
<p>During our research into the healthcare industry for this hackathon, we uncovered a significant disparity in the availability of physicians across different states in the U.S. This gap becomes even more pronounced when we look at specific specialties.</p>
`

const overviewMMS = `
<p>For example, dermatologists, who specialize in skin treatment, are far less accessible in rural areas compared to urban centers. This shortage of specialists highlights the healthcare inequality that many regions face, which can lead to delayed treatments and increased medical risks.</p>
<p>This led us to the issues surrounding the treatment of Melanoma, a type of skin cancer which requires the dermatologists. The treatment of melanoma requires Mohs Micrographic Surgery (MMS). With the lack of dermatologists available in rural regions, there exists a clear lack of Mohs surgeons as well.</p>
`

const overviewTelemedicine = `
<p>Research strongly supports telemedicine as an effective solution for reducing healthcare disparities, particularly in underserved areas. Telemedicine allows patients to access specialists, like dermatologists, regardless of geographic location, thereby addressing the shortage of healthcare professionals in rural areas.</p>
<p>This is backed by several studies:</p>
<ul>
<li>A comprehensive study published by the National Institutes of Health discusses how telemedicine has improved patient outcomes in rural settings and highlights its scalability for future healthcare needs. <a href="https://www.ncbi.nlm.nih.gov/pmc/articles/PMC9392842/" rel="noopener" target="_blank">Read more here</a>.</li>
<li>Another study emphasizes the role of virtual care in reducing barriers to treatment, particularly for patients with chronic illnesses in remote locations. <a href="https://www.ncbi.nlm.nih.gov/pmc/articles/PMC8430850/" rel="noopener" target="_blank">Explore the study here</a>.</li>
<li>Deloitte&rsquo;s research further demonstrates how telemedicine enhances access to medical care in rural regions by offering critical healthcare services to those who may not have access to local physicians. <a href="https://www2.deloitte.com/us/en/insights/industry/public-sector/virtual-health-telemedicine-rural-areas.html" rel="noopener" target="_blank">Check out Deloitte's insights</a>.</li>
</ul>
`

const overviewTranscriptionNeed = `
<p>Accurate and timely documentation is crucial in healthcare, but manual transcription during surgery is time-consuming and prone to errors.</p>
<ol>
<li><strong>Time Constraints:</strong> Surgeons often don't have time for detailed documentation during procedures.</li>
<li><strong>Error Identification:</strong> Without precise records, it&rsquo;s harder to spot medical or surgical errors.</li>
</ol>
`

const overviewSolution = `
<p>We have built a software that allows enhanced communication between surgeons and consultants during Moh's surgery for Melanoma. Our project offers two key features:</p>
<ol>
<li><strong>Real-time 3D Visualization:</strong> We provide a live 3D visualization of the patient's face during surgery, allowing consultants to make precise incisions and receive real-time updates throughout the procedure.</li>
<li><strong>Automated Medical Transcriptions:</strong> Our system generates highly accurate medical transcriptions from live surgical feeds, automating documentation and enabling detailed analysis of medical and surgical errors.</li>
</ol>
`

const visualizationTechniques = `
<p><strong>Key Techniques in 3D Reconstruction:</strong></p>
<ol>
<li><strong>Gaussian Splatting</strong>: A method that represents points in 2D images as Gaussian curves. These overlapping curves generate smooth 3D reconstructions, making it useful for visualizing surgical areas.</li>
<li><strong>NeRF (Neural Radiance Fields)</strong>: A deep learning technique used to generate 3D scenes by learning how light interacts with objects in the images.</li>
<li><strong>Point Cloud Generation</strong>: 3D points are generated from 2D image pixels, where pixel intensity (from RGB values) determines the depth, forming the z-axis of the 3D points.</li>
<li><strong>Sampling Rate</strong>: Used to control the granularity of the 3D point cloud, ensuring accurate reconstruction by selecting pixels at intervals.</li>
<li><strong>Incision Simulation</strong>: Incisions were achieved by detecting ray intersections between the mouse pointer and 3D model, creating dynamic lines based on user input.</li>
<li><strong>Annotations</strong>: 3D incisions are mapped to 2D annotations by projecting 3D points onto the 2D canvas, allowing users to see the surgical cuts in both 3D and 2D views.</li>
</ol>
`

const transcriptionTools = `
<p>We utilized several tools and methods to create real-time, accurate medical transcriptions:</p>
<h3>Tools:</h3>
<ol>
<li><strong>LITA (Language-Image Transformer Agent):</strong> Real-time, spatio-temporal transcription from video feeds.</li>
<li><strong>AWS Transcribe:</strong> For speaker diarization (identifying speakers) and transcription of the surgery's audio.</li>
<li><strong>Neo4j with GraphRAG:</strong> Knowledge graph construction and real-time updates.</li>
</ol>
<h3>Method:</h3>
<ol>
<li><strong>Time-Stamped Transcription:</strong> We generate time-stamped descriptions from the video feed to document each action during the surgery.</li>
<li><strong>Speaker Diarization:</strong> AWS Transcribe detects and separates different speakers in the surgical audio.</li>
<li><strong>Knowledge Graph Construction:</strong> Neo4j constructs a knowledge graph that maps relationships between entities (surgeons, tools, patients).</li>
</ol>
`
